// Package sqlite provides a SQLite-backed implementation of the storage.Store interface.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"github.com/mmynk/fairshare/internal/models"
	"github.com/mmynk/fairshare/internal/money"
	"github.com/mmynk/fairshare/internal/storage"
)

// Ensure SQLiteStore implements storage.Store
var _ storage.Store = (*SQLiteStore)(nil)

// SQLiteStore implements storage.Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// New creates a new SQLiteStore with the given database path.
// It creates the parent directories and runs migrations automatically.
func New(dbPath string) (*SQLiteStore, error) {
	// Create parent directory if it doesn't exist
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	// Pragmas in the DSN apply to every pooled connection.
	dsn := dbPath + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := runMigrations(context.Background(), db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

const (
	kindParticipant  = "participant"
	kindSplit        = "split"
	kindContribution = "contribution"
	kindShare        = "share"
)

// CreateExpense persists a new expense to the database.
func (s *SQLiteStore) CreateExpense(ctx context.Context, expense *models.Expense) error {
	if expense.ID == "" {
		expense.ID = uuid.New().String()
	}
	now := time.Now().Unix()
	if expense.CreatedAt == 0 {
		expense.CreatedAt = now
	}
	expense.UpdatedAt = expense.CreatedAt
	if expense.Title == "" {
		expense.Title = generateTitle(expense.Participants)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO expenses (id, group_id, title, total_cents, split_mode, created_by, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		expense.ID, expense.GroupID, expense.Title, int64(expense.Total), string(expense.Mode),
		expense.CreatedBy, expense.CreatedAt, expense.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert expense: %w", err)
	}

	if err := insertEntries(ctx, tx, expense); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetExpense retrieves an expense by ID, including all entries.
func (s *SQLiteStore) GetExpense(ctx context.Context, expenseID string) (*models.Expense, error) {
	expense := &models.Expense{}
	var total int64
	var mode string
	err := s.db.QueryRowContext(ctx,
		`SELECT id, group_id, title, total_cents, split_mode, created_by, created_at, updated_at
		 FROM expenses WHERE id = ?`,
		expenseID,
	).Scan(&expense.ID, &expense.GroupID, &expense.Title, &total, &mode,
		&expense.CreatedBy, &expense.CreatedAt, &expense.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("expense %s: %w", expenseID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get expense: %w", err)
	}
	expense.Total = money.Cents(total)
	expense.Mode = models.SplitMode(mode)

	if err := s.loadEntries(ctx, expense); err != nil {
		return nil, err
	}
	return expense, nil
}

// UpdateExpense replaces an expense's fields and all of its entries.
func (s *SQLiteStore) UpdateExpense(ctx context.Context, expense *models.Expense) error {
	expense.UpdatedAt = time.Now().Unix()
	if expense.Title == "" {
		expense.Title = generateTitle(expense.Participants)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`UPDATE expenses SET group_id = ?, title = ?, total_cents = ?, split_mode = ?, updated_at = ?
		 WHERE id = ?`,
		expense.GroupID, expense.Title, int64(expense.Total), string(expense.Mode), expense.UpdatedAt, expense.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update expense: %w", err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	} else if n == 0 {
		return fmt.Errorf("expense %s: %w", expense.ID, storage.ErrNotFound)
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM expense_entries WHERE expense_id = ?", expense.ID); err != nil {
		return fmt.Errorf("failed to clear expense entries: %w", err)
	}
	if err := insertEntries(ctx, tx, expense); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// DeleteExpense removes an expense; its entries cascade.
func (s *SQLiteStore) DeleteExpense(ctx context.Context, expenseID string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM expenses WHERE id = ?", expenseID)
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("expense %s: %w", expenseID, storage.ErrNotFound)
	}
	return nil
}

// ListExpensesByGroup returns all expenses of a group, newest first.
func (s *SQLiteStore) ListExpensesByGroup(ctx context.Context, groupID string) ([]*models.Expense, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, group_id, title, total_cents, split_mode, created_by, created_at, updated_at
		 FROM expenses WHERE group_id = ? ORDER BY created_at DESC, id`,
		groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses by group: %w", err)
	}

	var expenses []*models.Expense
	for rows.Next() {
		e := &models.Expense{}
		var total int64
		var mode string
		if err := rows.Scan(&e.ID, &e.GroupID, &e.Title, &total, &mode,
			&e.CreatedBy, &e.CreatedAt, &e.UpdatedAt); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		e.Total = money.Cents(total)
		e.Mode = models.SplitMode(mode)
		expenses = append(expenses, e)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expenses: %w", err)
	}

	for _, e := range expenses {
		if err := s.loadEntries(ctx, e); err != nil {
			return nil, err
		}
	}
	return expenses, nil
}

func insertEntries(ctx context.Context, tx *sql.Tx, e *models.Expense) error {
	insert := func(kind string, pos int, p models.Participant, pct decimal.Decimal, amount money.Cents) error {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO expense_entries (expense_id, kind, position, participant_id, name, percentage, amount_cents)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			e.ID, kind, pos, p.ID, p.Name, pct.String(), int64(amount),
		)
		if err != nil {
			return fmt.Errorf("failed to insert expense %s: %w", kind, err)
		}
		return nil
	}

	for i, p := range e.Participants {
		if err := insert(kindParticipant, i, p, decimal.Zero, 0); err != nil {
			return err
		}
	}
	for i, sp := range e.Splits {
		if err := insert(kindSplit, i, sp.Participant, sp.Percentage, sp.Amount); err != nil {
			return err
		}
	}
	for i, c := range e.Contributions {
		if err := insert(kindContribution, i, c.Participant, decimal.Zero, c.Amount); err != nil {
			return err
		}
	}
	for i, sh := range e.Shares {
		if err := insert(kindShare, i, sh.Participant, decimal.Zero, sh.Amount); err != nil {
			return err
		}
	}
	return nil
}

func (s *SQLiteStore) loadEntries(ctx context.Context, e *models.Expense) error {
	rows, err := s.db.QueryContext(ctx,
		`SELECT kind, participant_id, name, percentage, amount_cents
		 FROM expense_entries WHERE expense_id = ? ORDER BY kind, position`,
		e.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to get expense entries: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var kind, pctText string
		var p models.Participant
		var amount int64
		if err := rows.Scan(&kind, &p.ID, &p.Name, &pctText, &amount); err != nil {
			return fmt.Errorf("failed to scan expense entry: %w", err)
		}
		switch kind {
		case kindParticipant:
			e.Participants = append(e.Participants, p)
		case kindSplit:
			pct, err := decimal.NewFromString(pctText)
			if err != nil {
				return fmt.Errorf("corrupt percentage %q for expense %s: %w", pctText, e.ID, err)
			}
			e.Splits = append(e.Splits, models.SplitEntry{Participant: p, Percentage: pct, Amount: money.Cents(amount)})
		case kindContribution:
			e.Contributions = append(e.Contributions, models.Contribution{Participant: p, Amount: money.Cents(amount)})
		case kindShare:
			e.Shares = append(e.Shares, models.Share{Participant: p, Amount: money.Cents(amount)})
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate expense entries: %w", err)
	}
	return nil
}

// generateTitle creates an auto-generated title from participants.
func generateTitle(participants []models.Participant) string {
	if len(participants) == 0 {
		return fmt.Sprintf("Expense - %s", time.Now().Format("Jan 2, 2006"))
	}
	names := make([]string, len(participants))
	for i, p := range participants {
		names[i] = p.Name
		if names[i] == "" {
			names[i] = p.ID
		}
	}
	if len(names) <= 3 {
		return fmt.Sprintf("Split with %s", strings.Join(names, ", "))
	}
	return fmt.Sprintf("Split with %s and %d others",
		strings.Join(names[:2], ", "),
		len(names)-2,
	)
}
