package relayer

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	nearkit "github.com/nearkit/near-kit-go"
	"github.com/nearkit/near-kit-go/log"
	"github.com/nearkit/near-kit-go/params"
	"github.com/nearkit/near-kit-go/types"
)

// StartAPIServer start the relay api server
func StartAPIServer(r *Relayer) {
	router := initRouter(r)

	port := params.GetRelayerPort()
	allowedOrigins := params.GetRelayerConfig().AllowedOrigins

	corsOptions := []handlers.CORSOption{
		handlers.AllowedMethods([]string{"GET", "POST"}),
	}
	if len(allowedOrigins) != 0 {
		corsOptions = append(corsOptions,
			handlers.AllowedHeaders([]string{"X-Requested-With", "Content-Type"}),
			handlers.AllowedOrigins(allowedOrigins),
		)
	}

	log.Info("relay service listen and serving", "port", port, "allowedOrigins", allowedOrigins)
	svr := http.Server{
		Addr:         fmt.Sprintf(":%v", port),
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
		Handler:      handlers.CORS(corsOptions...)(router),
	}
	go func() {
		if err := svr.ListenAndServe(); err != nil {
			log.Error("ListenAndServe error", "err", err)
		}
	}()
}

func initRouter(r *Relayer) *mux.Router {
	router := mux.NewRouter()
	router.HandleFunc("/relay", relayHandler(r)).Methods("POST")
	router.HandleFunc("/health", healthHandler).Methods("GET")
	router.HandleFunc("/versioninfo", versionInfoHandler).Methods("GET")
	return router
}

// RelayRequest is the POST /relay body. Payload is a base64 encoded
// signed delegate action.
type RelayRequest struct {
	Payload string `json:"payload"`
}

// RelayResponse is the POST /relay success body.
type RelayResponse struct {
	TransactionHash string   `json:"transaction_hash"`
	SenderID        string   `json:"sender_id"`
	ReceiverID      string   `json:"receiver_id"`
	Logs            []string `json:"logs,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	jsonData, _ := json.Marshal(body)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(jsonData)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func relayHandler(r *Relayer) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		var body RelayRequest
		if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
			writeError(w, http.StatusBadRequest, fmt.Errorf("malformed request body: %w", err))
			return
		}
		if body.Payload == "" {
			writeError(w, http.StatusBadRequest, errors.New("missing 'payload'"))
			return
		}
		outcome, err := r.Relay([]byte(body.Payload))
		if err != nil {
			writeError(w, relayErrorStatus(err), err)
			return
		}
		writeJSON(w, http.StatusOK, &RelayResponse{
			TransactionHash: outcome.Transaction.Hash,
			SenderID:        outcome.Transaction.SignerID,
			ReceiverID:      outcome.Transaction.ReceiverID,
			Logs:            outcome.Logs(),
		})
	}
}

// relayErrorStatus map relay failures onto HTTP statuses: bad payloads
// and expired or disallowed delegates are the caller's fault, network
// failures are ours.
func relayErrorStatus(err error) int {
	switch {
	case errors.Is(err, types.ErrInvalidPayload):
		return http.StatusBadRequest
	case errors.Is(err, ErrReceiverNotAllowed):
		return http.StatusForbidden
	case errors.Is(err, ErrDelegateExpired):
		return http.StatusGone
	}
	var netErr *nearkit.NetworkError
	if errors.As(err, &netErr) {
		return http.StatusBadGateway
	}
	return http.StatusUnprocessableEntity
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func versionInfoHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"version": params.VersionWithMeta})
}
