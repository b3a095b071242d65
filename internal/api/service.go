package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/dmdmdm-nz/usbnetd/internal/nwapi"
	"github.com/dmdmdm-nz/usbnetd/internal/runtime"
)

// Service exposes a module's capability table over HTTP.
type Service struct {
	address string
	port    int

	api         *nwapi.API
	networkType string
	metrics     *Metrics

	mu     sync.Mutex
	server *http.Server
	closed bool
}

func NewService(host string, port int) *Service {
	return &Service{
		address: host,
		port:    port,
		metrics: NewMetrics(),
	}
}

// AttachModule wires the capability table (must be called before Start).
func (s *Service) AttachModule(api *nwapi.API, networkType string) {
	s.api = api
	s.networkType = networkType
}

// Start serves the API until ctx is cancelled or Close is called.
func (s *Service) Start(ctx context.Context) error {
	if s.api == nil {
		return errors.New("AttachModule was not called before Start")
	}

	addr := fmt.Sprintf("%s:%d", s.address, s.port)
	server := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.server = server
	s.mu.Unlock()

	log.Infof("Starting usbnetd API service at %s", addr)
	defer log.Info("Stopping usbnetd API service")

	go func() {
		<-ctx.Done()
		_ = s.Close()
	}()

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Service) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	if s.server == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.server.Shutdown(ctx)
}

// Handler returns the API routes.
func (s *Service) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			w.WriteHeader(http.StatusOK)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	})
	mux.HandleFunc("/link-up", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			s.handleLinkUp(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	})
	mux.HandleFunc("/networks", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			s.handleNetworks(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	})
	mux.Handle("/metrics", s.metrics.Handler())
	mux.HandleFunc("/ws/search", func(w http.ResponseWriter, r *http.Request) {
		StreamSearch(s, w, r)
	})
	return mux
}

type linkUpResult struct {
	status nwapi.Status
	ifname string
}

func (s *Service) handleLinkUp(w http.ResponseWriter, r *http.Request) {
	token := uuid.NewString()
	networkID := r.URL.Query().Get("network_id")

	// Buffered so a late callback never blocks the module.
	resultCh := make(chan linkUpResult, 1)
	s.api.LinkUp(s.networkType, 0, networkID, func(status nwapi.Status, _ error, ifname string, _ any) {
		resultCh <- linkUpResult{status: status, ifname: ifname}
	}, token)

	var res linkUpResult
	select {
	case <-r.Context().Done():
		return
	case res = <-resultCh:
	}
	s.metrics.observeLinkUp(res.status)

	logger := log.WithFields(log.Fields{
		"token":     token,
		"networkID": networkID,
		"status":    res.status,
	})

	code := http.StatusOK
	if res.status != nwapi.StatusSuccess {
		code = http.StatusServiceUnavailable
		logger.Info("Link-up refused, interface unavailable")
	} else {
		logger.WithField("interface", res.ifname).Info("Link-up succeeded")
	}

	writeJSON(w, code, LinkUpResponse{
		Status:    res.status.String(),
		Interface: res.ifname,
		Token:     token,
	})
}

func (s *Service) handleNetworks(w http.ResponseWriter, r *http.Request) {
	token := uuid.NewString()
	q := s.search(token)
	defer q.Close()

	networks := make([]NetworkInfo, 0)
	for {
		select {
		case <-r.Context().Done():
			return
		case rep, ok := <-q.Chan():
			if !ok {
				log.WithFields(log.Fields{
					"token":    token,
					"networks": len(networks),
				}).Debug("Search served")
				writeJSON(w, http.StatusOK, NetworksResponse{
					Token:          token,
					SearchLifetime: s.api.SearchLifetime,
					SearchInterval: s.api.SearchInterval,
					Networks:       networks,
				})
				return
			}
			if rep.Status == nwapi.SearchContinue {
				networks = append(networks, NewNetworkInfo(rep))
			}
		}
	}
}

// search starts a search and returns the queue its reports arrive on. The
// queue's channel closes after the terminal report.
func (s *Service) search(token string) *runtime.Queue[nwapi.Report] {
	q := runtime.NewQueue[nwapi.Report](8)
	s.metrics.Searches.Inc()
	go s.api.StartSearch(s.networkType, 0, func(status nwapi.SearchStatus, name, networkType string, attrs nwapi.Attr, id string, level nwapi.SignalLevel, extra []byte, _ any) {
		s.metrics.observeReport(status)
		q.Push(nwapi.Report{
			Status: status,
			Name:   name,
			Type:   networkType,
			Attrs:  attrs,
			ID:     id,
			Level:  level,
			Extra:  extra,
		})
		if status != nwapi.SearchContinue {
			q.Finish()
		}
	}, token)
	return q
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Add("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.WithError(err).Warn("Failed to encode response")
	}
}
