package repos

import (
	"cherrybud/internal/domain"

	"github.com/jmoiron/sqlx"
)

// LedgerRepo covers the flat bookkeeping rows: expenses, gross income and
// contact messages. They have no relationship to the shop tables.
type LedgerRepo struct{ db *sqlx.DB }

func NewLedgerRepo(db *sqlx.DB) *LedgerRepo { return &LedgerRepo{db: db} }

// ---------- Expenses ----------

func (r *LedgerRepo) InsertExpense(date string, cost float64, store, description, purchasedBy string) error {
	_, err := r.db.Exec(`
	  INSERT INTO expenses (date, cost, store_name, item_description, purchased_by)
	  VALUES (?, ?, ?, ?, ?)
	`, date, cost, store, description, purchasedBy)
	return err
}

func (r *LedgerRepo) DeleteExpense(id int64) error {
	_, err := r.db.Exec(`DELETE FROM expenses WHERE id = ?`, id)
	return err
}

func (r *LedgerRepo) ListExpenses() ([]domain.Expense, error) {
	out := []domain.Expense{}
	err := r.db.Select(&out, `
	  SELECT id, date, cost, store_name,
	         COALESCE(item_description,'') AS item_description,
	         COALESCE(purchased_by,'') AS purchased_by
	  FROM expenses
	`)
	return out, err
}

func (r *LedgerRepo) TotalExpenses() (float64, error) {
	var total float64
	err := r.db.Get(&total, `SELECT COALESCE(SUM(cost), 0) FROM expenses`)
	return total, err
}

// ExpenseBreakdown sums expenses per purchaser, skipping blank names.
func (r *LedgerRepo) ExpenseBreakdown() (map[string]float64, error) {
	var rows []struct {
		PurchasedBy string  `db:"purchased_by"`
		Total       float64 `db:"total"`
	}
	err := r.db.Select(&rows, `
	  SELECT purchased_by, SUM(cost) AS total
	  FROM expenses
	  WHERE purchased_by IS NOT NULL AND purchased_by != ''
	  GROUP BY purchased_by
	`)
	if err != nil {
		return nil, err
	}
	out := map[string]float64{}
	for _, row := range rows {
		out[row.PurchasedBy] = row.Total
	}
	return out, nil
}

// ---------- Gross income ----------

func (r *LedgerRepo) InsertIncome(date, source string, amount float64, notes string) error {
	_, err := r.db.Exec(`
	  INSERT INTO gross_income (date, source, amount, notes)
	  VALUES (?, ?, ?, ?)
	`, date, source, amount, notes)
	return err
}

func (r *LedgerRepo) DeleteIncome(id int64) error {
	_, err := r.db.Exec(`DELETE FROM gross_income WHERE id = ?`, id)
	return err
}

func (r *LedgerRepo) ListIncomes() ([]domain.Income, error) {
	out := []domain.Income{}
	err := r.db.Select(&out, `
	  SELECT id, date, source, amount, COALESCE(notes,'') AS notes
	  FROM gross_income
	  ORDER BY date DESC, id DESC
	`)
	return out, err
}

func (r *LedgerRepo) TotalIncome() (float64, error) {
	var total float64
	err := r.db.Get(&total, `SELECT COALESCE(SUM(amount), 0) FROM gross_income`)
	return total, err
}

// ---------- Contacts ----------

func (r *LedgerRepo) InsertContact(name, email, message string) error {
	_, err := r.db.Exec(`
	  INSERT INTO contacts (name, email, message) VALUES (?, ?, ?)
	`, name, email, message)
	return err
}

func (r *LedgerRepo) DeleteContact(id int64) error {
	_, err := r.db.Exec(`DELETE FROM contacts WHERE id = ?`, id)
	return err
}

func (r *LedgerRepo) ListContacts() ([]domain.Contact, error) {
	out := []domain.Contact{}
	err := r.db.Select(&out, `SELECT id, name, email, message FROM contacts`)
	return out, err
}
