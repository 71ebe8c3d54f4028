package router

import "net/http"

type FundsRouteRegistrar interface {
	RegisterRoutes(mux *http.ServeMux, authMiddleware func(http.Handler) http.Handler)
}

type ReferralRouteRegistrar interface {
	RegisterRoutes(mux *http.ServeMux, authMiddleware func(http.Handler) http.Handler)
}

func New(
	fundsController FundsRouteRegistrar,
	referralController ReferralRouteRegistrar,
	authMiddleware func(http.Handler) http.Handler,
) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	if fundsController != nil {
		fundsController.RegisterRoutes(mux, authMiddleware)
	}
	if referralController != nil {
		referralController.RegisterRoutes(mux, authMiddleware)
	}

	return mux
}
