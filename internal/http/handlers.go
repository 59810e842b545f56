package http

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"spareplan/internal/core"
	"spareplan/internal/ledger"
)

const maxBodySize = 1 << 20 // 1 MiB

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.store.Summary())
}

// handleListTransactions returns the log newest-first, optionally capped by
// a ?limit=N query parameter.
func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	txs := s.store.Transactions()
	if v := strings.TrimSpace(r.URL.Query().Get("limit")); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit < 0 {
			writeError(w, http.StatusUnprocessableEntity, "limit must be a non-negative integer")
			return
		}
		if limit < len(txs) {
			txs = txs[:limit]
		}
	}
	writeJSON(w, http.StatusOK, txs)
}

type transactionRequest struct {
	Amount      core.Money `json:"amount"`
	Category    string     `json:"category"`
	Description string     `json:"description"`
	Date        core.Date  `json:"date"`
	Type        string     `json:"type"`
}

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	var req transactionRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	tx, err := s.store.AddTransaction(r.Context(), ledger.TransactionDraft{
		Amount:      req.Amount,
		Category:    sanitizeInput(req.Category),
		Description: sanitizeInput(req.Description),
		Date:        req.Date,
		Type:        core.TransactionType(req.Type),
	})
	if err != nil {
		if isValidationError(err) {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		slog.ErrorContext(r.Context(), "Failed to add transaction", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to save transaction")
		return
	}

	writeJSON(w, http.StatusCreated, tx)
}

func (s *Server) handleListBudgets(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.store.Summary().Budgets)
}

type budgetRequest struct {
	Limit core.Money `json:"limit"`
}

func (s *Server) handleUpdateBudget(w http.ResponseWriter, r *http.Request) {
	category := r.PathValue("category")

	var req budgetRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	found, err := s.store.UpdateBudgetLimit(r.Context(), category, req.Limit)
	if err != nil {
		if isValidationError(err) {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		slog.ErrorContext(r.Context(), "Failed to update budget", "error", err, "category", category)
		writeError(w, http.StatusInternalServerError, "failed to save budget")
		return
	}
	if !found {
		writeError(w, http.StatusNotFound, "unknown budget category")
		return
	}

	writeJSON(w, http.StatusOK, core.BudgetLimit{Category: category, Limit: req.Limit})
}

func (s *Server) handleListGoals(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.store.Goals())
}

type goalRequest struct {
	Name         string     `json:"name"`
	TargetAmount core.Money `json:"targetAmount"`
	Deadline     core.Date  `json:"deadline"`
	Category     string     `json:"category"`
}

func (s *Server) handleCreateGoal(w http.ResponseWriter, r *http.Request) {
	var req goalRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	goal, err := s.store.AddSavingsGoal(r.Context(), ledger.GoalDraft{
		Name:         sanitizeInput(req.Name),
		TargetAmount: req.TargetAmount,
		Deadline:     req.Deadline,
		Category:     sanitizeInput(req.Category),
	})
	if err != nil {
		if isValidationError(err) {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		slog.ErrorContext(r.Context(), "Failed to add savings goal", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to save goal")
		return
	}

	writeJSON(w, http.StatusCreated, goal)
}

type contributionRequest struct {
	Amount core.Money `json:"amount"`
}

func (s *Server) handleContribute(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var req contributionRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	found, err := s.store.Contribute(r.Context(), id, req.Amount)
	if err != nil {
		if isValidationError(err) {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		slog.ErrorContext(r.Context(), "Failed to record contribution", "error", err, "goal_id", id)
		writeError(w, http.StatusInternalServerError, "failed to save contribution")
		return
	}
	if !found {
		writeError(w, http.StatusNotFound, "unknown savings goal")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	body := http.MaxBytesReader(w, r.Body, maxBodySize)
	res, err := s.importer.Import(r.Context(), body)
	if err != nil {
		slog.ErrorContext(r.Context(), "CSV import failed", "error", err)
		writeError(w, http.StatusInternalServerError, "import failed")
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Reset(r.Context()); err != nil {
		slog.ErrorContext(r.Context(), "Failed to reset ledger", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to reset ledger")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// decodeBody reads a size-capped JSON body into dst.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) error {
	body := http.MaxBytesReader(w, r.Body, maxBodySize)
	data, err := io.ReadAll(body)
	if err != nil {
		return errors.New("request body unreadable or too large")
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return errors.New("malformed request body")
	}
	return nil
}

func isValidationError(err error) bool {
	for _, known := range []error{
		core.ErrInvalidAmount,
		core.ErrEmptyCategory,
		core.ErrEmptyDescription,
		core.ErrEmptyName,
		core.ErrInvalidType,
	} {
		if errors.Is(err, known) {
			return true
		}
	}
	return false
}
