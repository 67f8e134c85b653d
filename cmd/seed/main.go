package main

import (
	"context"
	"fmt"

	"github.com/wb-go/wbf/zlog"

	"thriftsave/internal/config"
	"thriftsave/internal/database"
	"thriftsave/internal/domain/auth"
	"thriftsave/internal/domain/complaint"
	"thriftsave/internal/domain/notification"
	"thriftsave/internal/domain/thrift"
	"thriftsave/internal/domain/wallet"
	"thriftsave/internal/server"
)

func main() {
	zlog.Init()
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		zlog.Logger.Fatal().Err(err).Msg("failed to load config")
	}
	if cfg.IsProduction() {
		zlog.Logger.Fatal().Msg("refusing to seed a production database")
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		zlog.Logger.Fatal().Err(err).Msg("DB connection failed")
	}

	zlog.Logger.Info().Msg("running AutoMigrate...")
	if err := server.Migrate(db); err != nil {
		zlog.Logger.Fatal().Err(err).Msg("AutoMigrate failed")
	}

	// Cleanup old data (children first)
	zlog.Logger.Info().Msg("cleaning old data...")
	for _, table := range []string{
		"notification_recipients", "notifications",
		"complaint_replies", "complaints",
		"thrift_subscriptions", "thrift_packages",
		"wallet_transactions", "payout_accounts", "wallets",
		"users",
	} {
		if err := db.Exec("DELETE FROM " + table).Error; err != nil {
			zlog.Logger.Fatal().Err(err).Str("table", table).Msg("cleanup failed")
		}
	}

	users := auth.NewUserRepository(db)
	wallets := wallet.NewService(db)
	packages := thrift.NewService(thrift.NewRepository(db), wallets)
	notifications := notification.NewService(notification.NewRepository(db), users, packages, notification.NewHub())
	complaints := complaint.NewService(
		complaint.NewRepository(db),
		complaint.NewTicketIssuer(cfg.Ticket.Prefix),
		users,
		complaint.WithRetry(cfg.Ticket.Attempts, cfg.Ticket.RetryDelay),
		complaint.WithReplyNotifier(notification.NewComplaintNotifier(notifications)),
	)

	// ================== USERS ==================
	admin := mustUser(ctx, users, "Administrator", "admin@thriftsave.ng", "admin12345", auth.RoleAdmin)
	staff := mustUser(ctx, users, "Support Desk", "support@thriftsave.ng", "support12345", auth.RoleStaff)

	savers := make([]*auth.User, 0, 3)
	for i, email := range []string{"chioma@mail.ng", "tunde@mail.ng", "amina@mail.ng"} {
		u := mustUser(ctx, users, fmt.Sprintf("Saver %d", i+1), email, "saver12345", auth.RoleUser)
		savers = append(savers, u)
	}

	// ================== PACKAGES ==================
	zlog.Logger.Info().Msg("creating packages...")
	plans := []thrift.CreatePackageRequest{
		{Name: "Daily Ajo", Description: "Small daily contributions", ContributionAmount: 50_000, Frequency: thrift.FrequencyDaily, Cycles: 30},
		{Name: "Weekly Esusu", Description: "Weekly savings circle", ContributionAmount: 500_000, Frequency: thrift.FrequencyWeekly, Cycles: 12},
		{Name: "Monthly Target", Description: "Save towards a yearly goal", ContributionAmount: 2_000_000, Frequency: thrift.FrequencyMonthly, Cycles: 12},
	}
	created := make([]*thrift.Package, 0, len(plans))
	for _, p := range plans {
		pkg, err := packages.Create(ctx, p)
		if err != nil {
			zlog.Logger.Fatal().Err(err).Str("package", p.Name).Msg("create package failed")
		}
		created = append(created, pkg)
	}

	// ================== WALLETS & SUBSCRIPTIONS ==================
	for i, u := range savers {
		if _, _, err := wallets.Deposit(ctx, u.ID, 5_000_000, fmt.Sprintf("SEED-%d", u.ID)); err != nil {
			zlog.Logger.Fatal().Err(err).Int64("user_id", u.ID).Msg("seed deposit failed")
		}
		if _, err := packages.Subscribe(ctx, u.ID, created[i%len(created)].ID); err != nil {
			zlog.Logger.Fatal().Err(err).Int64("user_id", u.ID).Msg("seed subscription failed")
		}
	}

	// ================== COMPLAINTS ==================
	c, err := complaints.Submit(ctx, complaint.CreateComplaintInput{
		Title:       "Contribution debited twice",
		Description: "My weekly contribution was taken twice on Monday.",
		Category:    complaint.CategoryTransaction,
		Priority:    complaint.PriorityHigh,
		OwnerID:     savers[0].ID,
	})
	if err != nil {
		zlog.Logger.Fatal().Err(err).Msg("seed complaint failed")
	}
	if _, err := complaints.AddReply(ctx, c.ID, staff.ID, "Thanks, we are reviewing the duplicate debit.", complaint.ReplyTypeReply); err != nil {
		zlog.Logger.Fatal().Err(err).Msg("seed reply failed")
	}

	// ================== NOTIFICATIONS ==================
	if _, err := notifications.CreateAndDispatch(ctx, notification.CreateInput{
		Title:     "Welcome to ThriftSave",
		Message:   "Start saving with a thrift package today.",
		Type:      notification.TypeSystem,
		Rule:      notification.AllUsers(),
		CreatedBy: admin.ID,
	}); err != nil {
		zlog.Logger.Fatal().Err(err).Msg("seed notification failed")
	}

	zlog.Logger.Info().
		Str("admin", "admin@thriftsave.ng / admin12345").
		Str("staff", "support@thriftsave.ng / support12345").
		Str("savers", "saver12345").
		Str("ticket", c.TicketNumber).
		Msg("seed completed")
}

func mustUser(ctx context.Context, users *auth.UserRepository, name, email, password string, role auth.UserRole) *auth.User {
	hash, err := auth.HashPassword(password)
	if err != nil {
		zlog.Logger.Fatal().Err(err).Msg("hash password failed")
	}
	u := &auth.User{
		Name:             name,
		Email:            email,
		PasswordHash:     hash,
		Role:             role,
		OnboardingStatus: auth.OnboardingCompleted,
	}
	if err := users.Create(ctx, u); err != nil {
		zlog.Logger.Fatal().Err(err).Str("email", email).Msg("create user failed")
	}
	zlog.Logger.Info().Str("email", email).Str("role", string(role)).Msg("user created")
	return u
}
