package main

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/pokerfloor/pokerfloor/internal/httputil"
	"github.com/pokerfloor/pokerfloor/internal/middleware"
	"github.com/pokerfloor/pokerfloor/internal/model"
	"github.com/pokerfloor/pokerfloor/internal/service"
	"github.com/pokerfloor/pokerfloor/internal/store"
)

func newRouter(database *sqlx.DB) http.Handler {
	userStore := store.NewUserStore(database)
	casinoStore := store.NewCasinoStore(database)
	tournamentStore := store.NewTournamentStore(database)
	liveStateStore := store.NewLiveStateStore(database)
	staffRequestStore := store.NewStaffRequestStore(database)

	userService := service.NewUserService(database, userStore, casinoStore)
	casinoService := service.NewCasinoService(database, casinoStore)
	tournamentService := service.NewTournamentService(database, tournamentStore, casinoStore)
	liveStateService := service.NewLiveStateService(database, liveStateStore, tournamentStore)
	staffRequestService := service.NewStaffRequestService(database, staffRequestStore, userStore)

	r := chi.NewRouter()

	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))
	r.Use(middleware.Authenticate(userStore))

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/register", func(w http.ResponseWriter, r *http.Request) {
			var input service.RegisterInput
			if err := httputil.DecodeJSON(r, &input); err != nil {
				httputil.BadRequest(w, "Invalid request body", err)
				return
			}
			if input.Email == "" || input.Password == "" {
				httputil.BadRequest(w, "Email and password are required", nil)
				return
			}
			result, err := userService.Register(r.Context(), input)
			if err != nil {
				respondServiceError(w, err)
				return
			}
			httputil.WriteJSON(w, http.StatusCreated, result)
		})

		r.Post("/auth/login", func(w http.ResponseWriter, r *http.Request) {
			var input struct {
				Email    string `json:"email"`
				Password string `json:"password"`
			}
			if err := httputil.DecodeJSON(r, &input); err != nil {
				httputil.BadRequest(w, "Invalid request body", err)
				return
			}
			result, err := userService.Login(r.Context(), input.Email, input.Password)
			if err != nil {
				respondServiceError(w, err)
				return
			}
			httputil.WriteJSON(w, http.StatusOK, result)
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireUser)
			r.Get("/auth/me", func(w http.ResponseWriter, r *http.Request) {
				httputil.WriteJSON(w, http.StatusOK, middleware.GetUser(r.Context()))
			})
		})

		r.Get("/casinos", func(w http.ResponseWriter, r *http.Request) {
			casinos, err := casinoService.ListCasinos(r.Context())
			if err != nil {
				httputil.InternalServerError(w, "Failed to list casinos", err)
				return
			}
			httputil.WriteJSON(w, http.StatusOK, casinos)
		})

		r.Get("/casinos/nearby", func(w http.ResponseWriter, r *http.Request) {
			latStr, lngStr := r.URL.Query().Get("lat"), r.URL.Query().Get("lng")
			if latStr == "" || lngStr == "" {
				// no location: plain listing
				casinos, err := casinoService.ListCasinos(r.Context())
				if err != nil {
					httputil.InternalServerError(w, "Failed to list casinos", err)
					return
				}
				httputil.WriteJSON(w, http.StatusOK, casinos)
				return
			}
			lat, errLat := strconv.ParseFloat(latStr, 64)
			lng, errLng := strconv.ParseFloat(lngStr, 64)
			if errLat != nil || errLng != nil {
				httputil.BadRequest(w, "lat and lng must be numbers", nil)
				return
			}
			casinos, err := casinoService.Nearby(r.Context(), lat, lng)
			if err != nil {
				httputil.InternalServerError(w, "Failed to list casinos", err)
				return
			}
			httputil.WriteJSON(w, http.StatusOK, casinos)
		})

		r.Get("/casinos/{id}", func(w http.ResponseWriter, r *http.Request) {
			casino, err := casinoService.GetCasino(r.Context(), chi.URLParam(r, "id"))
			if err != nil {
				respondServiceError(w, err)
				return
			}
			httputil.WriteJSON(w, http.StatusOK, casino)
		})

		r.Get("/casinos/{id}/tournaments", func(w http.ResponseWriter, r *http.Request) {
			tournaments, err := tournamentService.ListTournaments(r.Context(), store.TournamentFilter{
				CasinoID: chi.URLParam(r, "id"),
			})
			if err != nil {
				httputil.InternalServerError(w, "Failed to list tournaments", err)
				return
			}
			httputil.WriteJSON(w, http.StatusOK, tournaments)
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireStaff)

			r.Post("/casinos", func(w http.ResponseWriter, r *http.Request) {
				var input service.CasinoInput
				if err := httputil.DecodeJSON(r, &input); err != nil {
					httputil.BadRequest(w, "Invalid request body", err)
					return
				}
				casino, err := casinoService.CreateCasino(r.Context(), input)
				if err != nil {
					respondServiceError(w, err)
					return
				}
				httputil.WriteJSON(w, http.StatusCreated, casino)
			})

			r.Put("/casinos/{id}", func(w http.ResponseWriter, r *http.Request) {
				var input service.CasinoInput
				if err := httputil.DecodeJSON(r, &input); err != nil {
					httputil.BadRequest(w, "Invalid request body", err)
					return
				}
				user := middleware.GetUser(r.Context())
				casino, err := casinoService.UpdateCasino(r.Context(), user, chi.URLParam(r, "id"), input)
				if err != nil {
					respondServiceError(w, err)
					return
				}
				httputil.WriteJSON(w, http.StatusOK, casino)
			})

			r.Delete("/casinos/{id}", func(w http.ResponseWriter, r *http.Request) {
				user := middleware.GetUser(r.Context())
				deleted, err := casinoService.DeleteCasino(r.Context(), user, chi.URLParam(r, "id"))
				if err != nil {
					respondServiceError(w, err)
					return
				}
				if !deleted {
					httputil.NotFound(w, "Casino not found", nil)
					return
				}
				w.WriteHeader(http.StatusNoContent)
			})
		})

		r.Get("/tournaments", func(w http.ResponseWriter, r *http.Request) {
			filter, err := parseTournamentFilter(r)
			if err != nil {
				httputil.BadRequest(w, err.Error(), nil)
				return
			}
			tournaments, err := tournamentService.ListTournaments(r.Context(), filter)
			if err != nil {
				httputil.InternalServerError(w, "Failed to list tournaments", err)
				return
			}
			httputil.WriteJSON(w, http.StatusOK, tournaments)
		})

		r.Get("/tournaments/{id}", func(w http.ResponseWriter, r *http.Request) {
			tournament, err := tournamentService.GetTournament(r.Context(), chi.URLParam(r, "id"))
			if err != nil {
				respondServiceError(w, err)
				return
			}
			httputil.WriteJSON(w, http.StatusOK, tournament)
		})

		r.Get("/tournaments/{id}/live", func(w http.ResponseWriter, r *http.Request) {
			state, err := liveStateService.GetLiveState(r.Context(), chi.URLParam(r, "id"))
			if err != nil {
				httputil.InternalServerError(w, "Failed to get live state", err)
				return
			}
			// nil encodes as `null`: no driver has uploaded yet
			httputil.WriteJSON(w, http.StatusOK, state)
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireStaff)

			r.Post("/tournaments", func(w http.ResponseWriter, r *http.Request) {
				var input service.TournamentInput
				if err := httputil.DecodeJSON(r, &input); err != nil {
					httputil.BadRequest(w, "Invalid request body", err)
					return
				}
				if input.CasinoID == uuid.Nil {
					httputil.BadRequest(w, "casinoId is required", nil)
					return
				}
				user := middleware.GetUser(r.Context())
				tournament, err := tournamentService.CreateTournament(r.Context(), user, input)
				if err != nil {
					respondServiceError(w, err)
					return
				}
				httputil.WriteJSON(w, http.StatusCreated, tournament)
			})

			r.Put("/tournaments/{id}", func(w http.ResponseWriter, r *http.Request) {
				var input service.TournamentInput
				if err := httputil.DecodeJSON(r, &input); err != nil {
					httputil.BadRequest(w, "Invalid request body", err)
					return
				}
				user := middleware.GetUser(r.Context())
				tournament, err := tournamentService.UpdateTournament(r.Context(), user, chi.URLParam(r, "id"), input)
				if err != nil {
					respondServiceError(w, err)
					return
				}
				httputil.WriteJSON(w, http.StatusOK, tournament)
			})

			r.Delete("/tournaments/{id}", func(w http.ResponseWriter, r *http.Request) {
				user := middleware.GetUser(r.Context())
				if err := tournamentService.DeleteTournament(r.Context(), user, chi.URLParam(r, "id")); err != nil {
					respondServiceError(w, err)
					return
				}
				w.WriteHeader(http.StatusNoContent)
			})

			r.Patch("/tournaments/{id}/live", func(w http.ResponseWriter, r *http.Request) {
				var update model.LiveStateUpdate
				if err := httputil.DecodeJSON(r, &update); err != nil {
					httputil.BadRequest(w, "Invalid request body", err)
					return
				}
				user := middleware.GetUser(r.Context())
				state, err := liveStateService.UpsertLiveState(r.Context(), user, chi.URLParam(r, "id"), update)
				if err != nil {
					respondServiceError(w, err)
					return
				}
				httputil.WriteJSON(w, http.StatusOK, state)
			})
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireUser)

			r.Post("/staff-requests", func(w http.ResponseWriter, r *http.Request) {
				var input struct {
					CasinoID uuid.UUID `json:"casinoId"`
				}
				if err := httputil.DecodeJSON(r, &input); err != nil {
					httputil.BadRequest(w, "Invalid request body", err)
					return
				}
				if _, err := casinoService.GetCasino(r.Context(), input.CasinoID.String()); err != nil {
					respondServiceError(w, err)
					return
				}
				user := middleware.GetUser(r.Context())
				req, err := staffRequestService.CreateRequest(r.Context(), user, input.CasinoID)
				if err != nil {
					respondServiceError(w, err)
					return
				}
				httputil.WriteJSON(w, http.StatusCreated, req)
			})

			r.Get("/staff-requests", func(w http.ResponseWriter, r *http.Request) {
				casinoID, err := uuid.Parse(r.URL.Query().Get("casinoId"))
				if err != nil {
					httputil.BadRequest(w, "casinoId query parameter is required", err)
					return
				}
				user := middleware.GetUser(r.Context())
				requests, err := staffRequestService.ListPending(r.Context(), user, casinoID)
				if err != nil {
					respondServiceError(w, err)
					return
				}
				httputil.WriteJSON(w, http.StatusOK, requests)
			})

			r.Post("/staff-requests/{id}/approve", func(w http.ResponseWriter, r *http.Request) {
				user := middleware.GetUser(r.Context())
				req, err := staffRequestService.Approve(r.Context(), user, chi.URLParam(r, "id"))
				if err != nil {
					respondServiceError(w, err)
					return
				}
				httputil.WriteJSON(w, http.StatusOK, req)
			})

			r.Post("/staff-requests/{id}/deny", func(w http.ResponseWriter, r *http.Request) {
				user := middleware.GetUser(r.Context())
				req, err := staffRequestService.Deny(r.Context(), user, chi.URLParam(r, "id"))
				if err != nil {
					respondServiceError(w, err)
					return
				}
				httputil.WriteJSON(w, http.StatusOK, req)
			})
		})
	})

	return r
}

func parseTournamentFilter(r *http.Request) (store.TournamentFilter, error) {
	q := r.URL.Query()
	filter := store.TournamentFilter{
		CasinoID: q.Get("casinoId"),
		Status:   model.TournamentStatus(q.Get("status")),
	}
	if v := q.Get("from"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return filter, errors.New("from must be RFC3339")
		}
		filter.DateFrom = t
	}
	if v := q.Get("to"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return filter, errors.New("to must be RFC3339")
		}
		filter.DateTo = t
	}
	return filter, nil
}

// respondServiceError maps service sentinels and sql.ErrNoRows onto HTTP
// statuses.
func respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, sql.ErrNoRows):
		httputil.NotFound(w, "Not found", nil)
	case errors.Is(err, service.ErrNotAssigned),
		errors.Is(err, service.ErrAdminOnly),
		errors.Is(err, service.ErrAdminOfCasino):
		httputil.Forbidden(w, err.Error())
	case errors.Is(err, service.ErrBadCredentials):
		httputil.Unauthorized(w, err.Error())
	case errors.Is(err, service.ErrEmailTaken):
		httputil.Conflict(w, err.Error())
	case errors.Is(err, service.ErrDuplicateReq),
		errors.Is(err, service.ErrAlreadyDecided):
		httputil.BadRequest(w, err.Error(), nil)
	default:
		httputil.InternalServerError(w, "Unexpected error", err)
	}
}
