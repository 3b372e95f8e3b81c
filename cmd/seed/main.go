// Package main provides a CLI tool that creates the database schema and
// seeds roles, permissions and the initial admin user. Optionally seeds
// demo catalog data.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"loomledger/internal/core/apperror"
	"loomledger/internal/core/id"
	"loomledger/internal/domain/auth"
	"loomledger/internal/domain/catalogs/product"
	"loomledger/internal/domain/catalogs/supervisor"
	"loomledger/internal/domain/catalogs/weaver"
	"loomledger/internal/domain/documents/receipt"
	"loomledger/internal/infrastructure/numerator"
	"loomledger/internal/infrastructure/storage/postgres"
	"loomledger/internal/infrastructure/storage/postgres/auth_repo"
	"loomledger/internal/infrastructure/storage/postgres/catalog_repo"
	"loomledger/internal/infrastructure/storage/postgres/document_repo"
	"loomledger/pkg/logger"
)

func main() {
	_ = godotenv.Load()

	log, err := logger.New(logger.Config{
		Level:       "info",
		Development: true,
	})
	if err != nil {
		fmt.Printf("failed to create logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}

	pool, err := postgres.NewPool(ctx, postgres.DefaultPoolConfig(dbURL))
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()

	log.Info("connected to database")

	if err := createSchema(ctx, pool); err != nil {
		log.Fatalw("failed to create schema", "error", err)
	}
	log.Info("schema up to date")

	txManager := postgres.NewTxManager(pool)

	if err := seedRolesAndPermissions(ctx, pool, log); err != nil {
		log.Fatalw("failed to seed roles and permissions", "error", err)
	}

	if err := seedAdminUser(ctx, pool, txManager, log); err != nil {
		log.Fatalw("failed to seed admin user", "error", err)
	}

	if os.Getenv("SEED_DEMO_DATA") == "true" {
		if err := seedDemoData(ctx, txManager, log); err != nil {
			log.Fatalw("failed to seed demo data", "error", err)
		}
	}

	log.Info("seeding completed successfully")
}

// schemaStatements is executed in order; every statement is idempotent.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS cat_products (
		id            UUID PRIMARY KEY,
		code          TEXT NOT NULL,
		name          TEXT NOT NULL,
		status        TEXT NOT NULL DEFAULT 'in_stock',
		serial_no     INT  NOT NULL DEFAULT 0,
		image_url     TEXT,
		deletion_mark BOOLEAN NOT NULL DEFAULT FALSE,
		version       INT NOT NULL DEFAULT 1,
		attributes    JSONB NOT NULL DEFAULT '{}'
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS ux_cat_products_code
		ON cat_products (code) WHERE NOT deletion_mark`,
	`CREATE UNIQUE INDEX IF NOT EXISTS ux_cat_products_name
		ON cat_products (LOWER(TRIM(name))) WHERE NOT deletion_mark`,

	`CREATE TABLE IF NOT EXISTS cat_supervisors (
		id            UUID PRIMARY KEY,
		code          TEXT NOT NULL,
		name          TEXT NOT NULL,
		password_hash TEXT NOT NULL,
		status        TEXT NOT NULL DEFAULT 'active',
		deletion_mark BOOLEAN NOT NULL DEFAULT FALSE,
		version       INT NOT NULL DEFAULT 1,
		attributes    JSONB NOT NULL DEFAULT '{}'
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS ux_cat_supervisors_code
		ON cat_supervisors (code) WHERE NOT deletion_mark`,

	`CREATE TABLE IF NOT EXISTS cat_weavers (
		id            UUID PRIMARY KEY,
		code          TEXT NOT NULL,
		name          TEXT NOT NULL,
		status        TEXT NOT NULL DEFAULT 'active',
		deletion_mark BOOLEAN NOT NULL DEFAULT FALSE,
		version       INT NOT NULL DEFAULT 1,
		attributes    JSONB NOT NULL DEFAULT '{}'
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS ux_cat_weavers_code
		ON cat_weavers (code) WHERE NOT deletion_mark`,

	`CREATE TABLE IF NOT EXISTS doc_receipts (
		id            UUID PRIMARY KEY,
		number        TEXT NOT NULL,
		date          TIMESTAMPTZ NOT NULL,
		comment       TEXT NOT NULL DEFAULT '',
		supervisor_id TEXT NOT NULL,
		weaver_id     TEXT NOT NULL,
		weaver_name   TEXT NOT NULL DEFAULT '',
		sub_total     NUMERIC(18,3) NOT NULL DEFAULT 0,
		deletion_mark BOOLEAN NOT NULL DEFAULT FALSE,
		version       INT NOT NULL DEFAULT 1,
		attributes    JSONB NOT NULL DEFAULT '{}',
		created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
		created_by    TEXT NOT NULL DEFAULT '',
		updated_by    TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS ux_doc_receipts_number ON doc_receipts (number)`,
	`CREATE INDEX IF NOT EXISTS ix_doc_receipts_date ON doc_receipts (date)`,
	`CREATE INDEX IF NOT EXISTS ix_doc_receipts_supervisor ON doc_receipts (supervisor_id)`,
	`CREATE INDEX IF NOT EXISTS ix_doc_receipts_weaver ON doc_receipts (weaver_id)`,

	`CREATE TABLE IF NOT EXISTS doc_receipt_lines (
		line_id      UUID PRIMARY KEY,
		document_id  UUID NOT NULL REFERENCES doc_receipts (id) ON DELETE CASCADE,
		line_no      INT NOT NULL,
		product_name TEXT NOT NULL,
		quantity     NUMERIC(18,3) NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS ix_doc_receipt_lines_document
		ON doc_receipt_lines (document_id)`,

	`CREATE TABLE IF NOT EXISTS sys_sequences (
		sequence_type TEXT NOT NULL,
		year          INT NOT NULL,
		current_val   BIGINT NOT NULL,
		PRIMARY KEY (sequence_type, year)
	)`,

	`CREATE TABLE IF NOT EXISTS sys_audit (
		id                 UUID PRIMARY KEY,
		entity_type        TEXT NOT NULL,
		entity_id          UUID NOT NULL,
		action             TEXT NOT NULL,
		user_id            TEXT NOT NULL DEFAULT '',
		payload            JSONB,
		payload_compressed BYTEA,
		compression_algo   TEXT NOT NULL DEFAULT 'none',
		created_at         TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS ix_sys_audit_entity
		ON sys_audit (entity_type, entity_id, created_at DESC)`,

	`CREATE TABLE IF NOT EXISTS users (
		id                    UUID PRIMARY KEY,
		email                 TEXT NOT NULL,
		password_hash         TEXT NOT NULL,
		first_name            TEXT NOT NULL DEFAULT '',
		last_name             TEXT NOT NULL DEFAULT '',
		is_active             BOOLEAN NOT NULL DEFAULT TRUE,
		is_admin              BOOLEAN NOT NULL DEFAULT FALSE,
		last_login_at         TIMESTAMPTZ,
		failed_login_attempts INT NOT NULL DEFAULT 0,
		locked_until          TIMESTAMPTZ,
		created_at            TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at            TIMESTAMPTZ NOT NULL DEFAULT now(),
		version               INT NOT NULL DEFAULT 1,
		deleted_at            TIMESTAMPTZ
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS ux_users_email
		ON users (LOWER(email)) WHERE deleted_at IS NULL`,

	`CREATE TABLE IF NOT EXISTS roles (
		id          UUID PRIMARY KEY,
		code        TEXT NOT NULL UNIQUE,
		name        TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		is_system   BOOLEAN NOT NULL DEFAULT FALSE,
		created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at  TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,

	`CREATE TABLE IF NOT EXISTS permissions (
		id          UUID PRIMARY KEY,
		code        TEXT NOT NULL UNIQUE,
		name        TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		resource    TEXT NOT NULL,
		action      TEXT NOT NULL,
		created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,

	`CREATE TABLE IF NOT EXISTS user_roles (
		user_id    UUID NOT NULL REFERENCES users (id) ON DELETE CASCADE,
		role_id    UUID NOT NULL REFERENCES roles (id) ON DELETE CASCADE,
		granted_by UUID,
		granted_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		PRIMARY KEY (user_id, role_id)
	)`,

	`CREATE TABLE IF NOT EXISTS role_permissions (
		role_id       UUID NOT NULL REFERENCES roles (id) ON DELETE CASCADE,
		permission_id UUID NOT NULL REFERENCES permissions (id) ON DELETE CASCADE,
		created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
		PRIMARY KEY (role_id, permission_id)
	)`,

	// user_id references either a users row or a cat_supervisors row
	// (supervisors sign in against the catalog), so no foreign key here.
	`CREATE TABLE IF NOT EXISTS refresh_tokens (
		id             UUID PRIMARY KEY,
		user_id        UUID NOT NULL,
		token_hash     TEXT NOT NULL,
		expires_at     TIMESTAMPTZ NOT NULL,
		created_at     TIMESTAMPTZ NOT NULL DEFAULT now(),
		revoked_at     TIMESTAMPTZ,
		revoked_reason TEXT,
		user_agent     TEXT,
		ip_address     INET
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS ux_refresh_tokens_hash
		ON refresh_tokens (token_hash)`,
	`CREATE INDEX IF NOT EXISTS ix_refresh_tokens_user ON refresh_tokens (user_id)`,
}

func createSchema(ctx context.Context, pool *postgres.Pool) error {
	for _, stmt := range schemaStatements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("exec schema statement: %w", err)
		}
	}
	return nil
}

// seedRolesAndPermissions inserts the permission catalog and the two
// system roles. The admin role carries every permission; the supervisor
// role the production subset.
func seedRolesAndPermissions(ctx context.Context, pool *postgres.Pool, log *logger.Logger) error {
	permIDs := make(map[string]id.ID)

	for _, p := range auth.AllPermissions() {
		permID := id.New()
		err := pool.QueryRow(ctx, `
			INSERT INTO permissions (id, code, name, resource, action)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (code) DO UPDATE SET name = EXCLUDED.name
			RETURNING id
		`, permID, p.Code, p.Name, p.Resource, p.Action).Scan(&permID)
		if err != nil {
			return fmt.Errorf("seed permission %s: %w", p.Code, err)
		}
		permIDs[p.Code] = permID
	}

	roles := []struct {
		code  string
		name  string
		perms []string
	}{
		{auth.RoleAdmin, "Administrator", permCodes(auth.AllPermissions())},
		{auth.RoleSupervisor, "Supervisor", auth.SupervisorPermissions()},
	}

	for _, r := range roles {
		roleID := id.New()
		err := pool.QueryRow(ctx, `
			INSERT INTO roles (id, code, name, is_system)
			VALUES ($1, $2, $3, TRUE)
			ON CONFLICT (code) DO UPDATE SET name = EXCLUDED.name
			RETURNING id
		`, roleID, r.code, r.name).Scan(&roleID)
		if err != nil {
			return fmt.Errorf("seed role %s: %w", r.code, err)
		}

		for _, code := range r.perms {
			permID, ok := permIDs[code]
			if !ok {
				continue
			}
			_, err := pool.Exec(ctx, `
				INSERT INTO role_permissions (role_id, permission_id)
				VALUES ($1, $2)
				ON CONFLICT (role_id, permission_id) DO NOTHING
			`, roleID, permID)
			if err != nil {
				return fmt.Errorf("assign permission %s to %s: %w", code, r.code, err)
			}
		}

		log.Infow("role seeded", "code", r.code, "permissions", len(r.perms))
	}

	return nil
}

func permCodes(perms []auth.Permission) []string {
	codes := make([]string, len(perms))
	for i, p := range perms {
		codes[i] = p.Code
	}
	return codes
}

func seedAdminUser(ctx context.Context, pool *postgres.Pool, txManager *postgres.TxManager, log *logger.Logger) error {
	adminEmail := os.Getenv("ADMIN_EMAIL")
	if adminEmail == "" {
		adminEmail = "admin@loomledger.local"
	}

	adminPassword := os.Getenv("ADMIN_PASSWORD")
	if adminPassword == "" {
		adminPassword = "Admin123!"
	}

	authService := newAuthService(txManager)

	user, err := authService.CreateUser(ctx, adminEmail, adminPassword, true)
	if err != nil {
		if appErr, ok := apperror.AsAppError(err); ok && appErr.HTTPStatus == 409 {
			log.Infow("admin user already exists", "email", adminEmail)
			return nil
		}
		return err
	}

	var roleID id.ID
	if err := pool.QueryRow(ctx, `SELECT id FROM roles WHERE code = $1`, auth.RoleAdmin).Scan(&roleID); err != nil {
		return fmt.Errorf("find admin role: %w", err)
	}

	userRepo := auth_repo.NewUserRepo(txManager)
	if err := userRepo.AssignRole(ctx, user.ID, roleID, id.Nil()); err != nil {
		return fmt.Errorf("assign admin role: %w", err)
	}

	log.Infow("admin user created", "email", adminEmail, "user_id", user.ID)
	return nil
}

// newAuthService wires the minimal auth service needed for seeding.
func newAuthService(txManager *postgres.TxManager) *auth.Service {
	supervisorService := supervisor.NewService(catalog_repo.NewSupervisorRepo(txManager), txManager)

	return auth.NewService(
		auth_repo.NewUserRepo(txManager),
		auth_repo.NewRoleRepo(txManager),
		auth_repo.NewPermissionRepo(txManager),
		auth_repo.NewTokenRepo(txManager),
		supervisorService,
		txManager,
		auth.NewJWTService(auth.DefaultJWTConfig("seed-only")),
		auth.DefaultServiceConfig(),
	)
}

// seedDemoData creates a small working set: a supervisor, a few weavers,
// products and one receipt, all through the domain services so codes,
// serials and numbers are assigned the same way the API assigns them.
func seedDemoData(ctx context.Context, txManager *postgres.TxManager, log *logger.Logger) error {
	log.Info("seeding demo data...")

	numeratorService := numerator.New(txManager.GetQuerier(ctx))

	productService := product.NewService(catalog_repo.NewProductRepo(txManager), txManager, numeratorService)
	supervisorService := supervisor.NewService(catalog_repo.NewSupervisorRepo(txManager), txManager)
	weaverService := weaver.NewService(catalog_repo.NewWeaverRepo(txManager), txManager)
	receiptService := receipt.NewService(document_repo.NewReceiptRepo(txManager), numeratorService, txManager)

	productNames := []string{"Towel 30x60", "Bath Mat", "Kitchen Napkin", "Bedsheet Single"}
	for _, name := range productNames {
		item := product.New(name)
		if err := productService.Create(ctx, item); err != nil {
			if _, ok := apperror.AsAppError(err); ok {
				log.Infow("product already exists, skipping", "name", name)
				continue
			}
			return fmt.Errorf("seed product %s: %w", name, err)
		}
	}

	sup := supervisor.New("SUP-001", "Demo Supervisor")
	sup.Password = "Super123!"
	if err := supervisorService.Create(ctx, sup); err != nil {
		if _, ok := apperror.AsAppError(err); ok {
			log.Info("demo supervisor already exists, skipping")
			sup = nil
		} else {
			return fmt.Errorf("seed supervisor: %w", err)
		}
	}

	weavers := []struct{ loomNo, name string }{
		{"L-01", "Weaver One"},
		{"L-02", "Weaver Two"},
	}
	for _, w := range weavers {
		item := weaver.New(w.loomNo, w.name)
		if err := weaverService.Create(ctx, item); err != nil {
			if _, ok := apperror.AsAppError(err); ok {
				log.Infow("weaver already exists, skipping", "loomNo", w.loomNo)
				continue
			}
			return fmt.Errorf("seed weaver %s: %w", w.loomNo, err)
		}
	}

	if sup != nil {
		doc := receipt.New("SUP-001", "L-01", "Weaver One")
		doc.AddLine("Towel 30x60", decimal.NewFromInt(12))
		doc.AddLine("Bath Mat", decimal.NewFromInt(4))
		if err := receiptService.Create(ctx, doc); err != nil {
			return fmt.Errorf("seed receipt: %w", err)
		}
		log.Infow("demo receipt created", "number", doc.Number)
	}

	log.Info("demo data seeded successfully")
	return nil
}
