package testutil

import (
	"database/sql"
	"testing"
	"time"

	"github.com/ndewijer/Investment-Tracker-Backend/internal/auth"
	"github.com/ndewijer/Investment-Tracker-Backend/internal/model"
)

// TestPassword is the plain-text password of users built without WithPassword.
const TestPassword = "correct-horse-battery"

// testBcryptCost keeps hashing fast in tests.
const testBcryptCost = 4

// UserBuilder provides a fluent interface for creating test users.
//
// Example usage:
//
//	user := testutil.NewUser().Build(t, db)
//
//	user := testutil.NewUser().
//	    WithEmail("ana@example.com").
//	    WithPassword("s3cret-pass").
//	    Build(t, db)
type UserBuilder struct {
	ID        string
	Name      string
	Email     string
	Password  string
	CreatedAt time.Time
}

// NewUser creates a UserBuilder with sensible defaults.
func NewUser() *UserBuilder {
	return &UserBuilder{
		ID:        MakeID(),
		Name:      "Test User",
		Email:     MakeEmail("user"),
		Password:  TestPassword,
		CreatedAt: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
	}
}

// WithName sets a custom name.
func (b *UserBuilder) WithName(name string) *UserBuilder {
	b.Name = name
	return b
}

// WithEmail sets a custom email. It is stored as given.
func (b *UserBuilder) WithEmail(email string) *UserBuilder {
	b.Email = email
	return b
}

// WithPassword sets the plain-text password.
func (b *UserBuilder) WithPassword(password string) *UserBuilder {
	b.Password = password
	return b
}

// Build creates the user in the database and returns it.
func (b *UserBuilder) Build(t *testing.T, db *sql.DB) model.User {
	t.Helper()

	hash, err := auth.HashPassword(b.Password, testBcryptCost)
	if err != nil {
		t.Fatalf("Failed to hash test password: %v", err)
	}

	query := `
		INSERT INTO users (id, name, email, password_hash, created_at)
		VALUES (?, ?, ?, ?, ?)
	`

	_, err = db.Exec(query, b.ID, b.Name, b.Email, hash, b.CreatedAt.Format(time.RFC3339))
	if err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}

	return model.User{
		ID:           b.ID,
		Name:         b.Name,
		Email:        b.Email,
		PasswordHash: hash,
		CreatedAt:    b.CreatedAt,
	}
}

// CreateUser creates a user with default values.
func CreateUser(t *testing.T, db *sql.DB) model.User {
	t.Helper()
	return NewUser().Build(t, db)
}

// InvestmentBuilder provides a fluent interface for creating test investments.
//
// Example usage:
//
//	inv := testutil.NewInvestment(user.ID).
//	    WithType("CDB").
//	    WithAmount(1000).
//	    WithYieldRate(10).
//	    WithDate(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)).
//	    Build(t, db)
type InvestmentBuilder struct {
	ID           string
	UserID       string
	Name         string
	Type         string
	Amount       float64
	YieldRate    float64
	Date         time.Time
	MaturityDate *time.Time
	Notes        string
	CreatedAt    time.Time
}

// NewInvestment creates an InvestmentBuilder owned by userID with sensible defaults.
func NewInvestment(userID string) *InvestmentBuilder {
	return &InvestmentBuilder{
		ID:        MakeID(),
		UserID:    userID,
		Name:      "Test Investment",
		Type:      "CDB",
		Amount:    1000,
		YieldRate: 10,
		Date:      time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		CreatedAt: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
	}
}

// WithID sets a custom ID.
func (b *InvestmentBuilder) WithID(id string) *InvestmentBuilder {
	b.ID = id
	return b
}

// WithName sets a custom name.
func (b *InvestmentBuilder) WithName(name string) *InvestmentBuilder {
	b.Name = name
	return b
}

// WithType sets the category.
func (b *InvestmentBuilder) WithType(investmentType string) *InvestmentBuilder {
	b.Type = investmentType
	return b
}

// WithAmount sets the principal.
func (b *InvestmentBuilder) WithAmount(amount float64) *InvestmentBuilder {
	b.Amount = amount
	return b
}

// WithYieldRate sets the annual rate in percent.
func (b *InvestmentBuilder) WithYieldRate(rate float64) *InvestmentBuilder {
	b.YieldRate = rate
	return b
}

// WithDate sets the start date.
func (b *InvestmentBuilder) WithDate(date time.Time) *InvestmentBuilder {
	b.Date = date
	return b
}

// WithMaturity sets the maturity date.
func (b *InvestmentBuilder) WithMaturity(date time.Time) *InvestmentBuilder {
	b.MaturityDate = &date
	return b
}

// Build creates the investment in the database and returns it.
func (b *InvestmentBuilder) Build(t *testing.T, db *sql.DB) model.Investment {
	t.Helper()

	var maturity any
	if b.MaturityDate != nil {
		maturity = b.MaturityDate.Format("2006-01-02")
	}

	query := `
		INSERT INTO investments (id, user_id, name, type, amount, yield_rate, date, maturity_date, notes, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	created := b.CreatedAt.Format(time.RFC3339)
	_, err := db.Exec(query,
		b.ID, b.UserID, b.Name, b.Type, b.Amount, b.YieldRate,
		b.Date.Format("2006-01-02"), maturity, b.Notes, created, created,
	)
	if err != nil {
		t.Fatalf("Failed to create test investment: %v", err)
	}

	return model.Investment{
		ID:           b.ID,
		UserID:       b.UserID,
		Name:         b.Name,
		Type:         b.Type,
		Amount:       b.Amount,
		YieldRate:    b.YieldRate,
		Date:         b.Date,
		MaturityDate: b.MaturityDate,
		Notes:        b.Notes,
		CreatedAt:    b.CreatedAt,
		UpdatedAt:    b.CreatedAt,
	}
}
