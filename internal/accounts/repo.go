package accounts

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/index-create7/self-health-mis/internal/fitness"
	"github.com/index-create7/self-health-mis/internal/telemetry/tracing"
	"github.com/index-create7/self-health-mis/pkg"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

var (
	ErrUsernameTaken      = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrProfileNotFound    = errors.New("profile not found")
)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

// Register creates an account and its default profile in one transaction.
// Usernames are case insensitive and unique.
func (r *Repo) Register(ctx context.Context, username, password string) (_ *Account, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.accounts.register")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	username = strings.TrimSpace(username)
	if err := validateCredentials(username, password); err != nil {
		return nil, err
	}

	passwordHash, err := pkg.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fitness.NewStorageError("accounts.register.begin", err)
	}
	defer func() {
		if err != nil {
			if rollbackErr := tx.Rollback(ctx); rollbackErr != nil {
				log.Errorf("register account, rollback: %s", rollbackErr)
			}
			return
		}
		if commitErr := tx.Commit(ctx); commitErr != nil {
			err = fitness.NewStorageError("accounts.register.commit", commitErr)
		}
	}()

	createdAt := time.Now()
	var accountID int
	err = tx.QueryRow(
		ctx,
		`INSERT INTO account (username, password_hash, created_at)
			VALUES ($1, $2, $3)
			RETURNING id;`,
		username, passwordHash, createdAt.Format(time.RFC3339),
	).Scan(&accountID)
	if err != nil {
		if pkg.IsUniqueViolationError(err) {
			return nil, ErrUsernameTaken
		}
		return nil, fitness.NewStorageError("accounts.register", err)
	}

	// every account starts with a bare profile, updated later via the profile endpoint
	_, err = tx.Exec(
		ctx,
		`INSERT INTO profile (account_id, name, fitness_level, preferred_exercises)
			VALUES ($1, $2, $3, '');`,
		accountID, username, string(FitnessLevelBeginner),
	)
	if err != nil {
		return nil, fitness.NewStorageError("accounts.register.profile", err)
	}

	span.SetAttributes(attribute.Int("account.id", accountID))

	return &Account{
		ID:        accountID,
		Username:  username,
		CreatedAt: createdAt,
	}, nil
}

// VerifyCredentials checks a username and password pair and resolves the
// account id. Wrong username and wrong password are indistinguishable to the
// caller.
func (r *Repo) VerifyCredentials(ctx context.Context, username, password string) (_ int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.accounts.verifycredentials")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	username = strings.TrimSpace(username)
	if err := validateCredentials(username, password); err != nil {
		return 0, err
	}

	var accountID int
	var passwordHash string
	err = r.db.QueryRow(
		ctx,
		`SELECT id, password_hash FROM account WHERE LOWER(username) = LOWER($1);`,
		username,
	).Scan(&accountID, &passwordHash)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, ErrInvalidCredentials
	}
	if err != nil {
		return 0, fitness.NewStorageError("accounts.verifycredentials", err)
	}

	if !pkg.CheckPasswordHash(password, passwordHash) {
		return 0, ErrInvalidCredentials
	}

	return accountID, nil
}

func (r *Repo) GetProfile(ctx context.Context, accountID int) (_ *Profile, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.accounts.getprofile")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("account_id", accountID))

	var p Profile
	var fitnessLevel string
	var preferredRaw string
	err = r.db.QueryRow(
		ctx,
		`SELECT id, account_id, name, student_id, age, height_cm, weight_kg, fitness_level, preferred_exercises
			FROM profile WHERE account_id = $1;`,
		accountID,
	).Scan(
		&p.ID, &p.AccountID, &p.Name, &p.StudentID, &p.Age,
		&p.HeightCm, &p.WeightKg, &fitnessLevel, &preferredRaw,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, fitness.NewStorageError("accounts.getprofile", err)
	}

	p.FitnessLevel = FitnessLevel(fitnessLevel)
	p.PreferredExercises = splitPreferredExercises(preferredRaw)
	return &p, nil
}

// UpdateProfile replaces the stored profile of an account with the given one.
func (r *Repo) UpdateProfile(ctx context.Context, profile Profile) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.accounts.updateprofile")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("account_id", profile.AccountID))

	if err := validateProfile(profile); err != nil {
		return err
	}

	tag, err := r.db.Exec(
		ctx,
		`UPDATE profile SET
				name = $1, student_id = $2, age = $3, height_cm = $4, weight_kg = $5,
				fitness_level = $6, preferred_exercises = $7
			WHERE account_id = $8;`,
		profile.Name, profile.StudentID, profile.Age, profile.HeightCm, profile.WeightKg,
		string(profile.FitnessLevel), joinPreferredExercises(profile.PreferredExercises),
		profile.AccountID,
	)
	if err != nil {
		return fitness.NewStorageError("accounts.updateprofile", err)
	}

	if tag.RowsAffected() == 0 {
		return ErrProfileNotFound
	}

	return nil
}

func validateCredentials(username, password string) error {
	if len(username) < 3 {
		return fitness.NewValidationError("username", "must be at least 3 characters")
	}
	if len(password) < 6 {
		return fitness.NewValidationError("password", "must be at least 6 characters")
	}
	for _, c := range username {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '_':
		default:
			return fitness.NewValidationError("username", "only letters, digits and underscores allowed")
		}
	}
	return nil
}

func validateProfile(profile Profile) error {
	if profile.AccountID <= 0 {
		return fitness.NewValidationError("accountId", "must be positive")
	}
	if strings.TrimSpace(profile.Name) == "" {
		return fitness.NewValidationError("name", "must not be empty")
	}
	if !profile.FitnessLevel.Valid() {
		return fitness.NewValidationError("fitnessLevel", fmt.Sprintf("unknown fitness level %q", profile.FitnessLevel))
	}
	if profile.Age != nil && (*profile.Age <= 0 || *profile.Age > 150) {
		return fitness.NewValidationError("age", "must be between 1 and 150")
	}
	if profile.HeightCm != nil && *profile.HeightCm <= 0 {
		return fitness.NewValidationError("heightCm", "must be positive")
	}
	if profile.WeightKg != nil && *profile.WeightKg <= 0 {
		return fitness.NewValidationError("weightKg", "must be positive")
	}
	return nil
}
