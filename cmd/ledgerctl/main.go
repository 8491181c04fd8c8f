// Command ledgerctl is the operator tool for republics: it creates groups and
// members, requests monthly billing and prints member dashboards.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/term"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/mmynk/republica/internal/auth"
	"github.com/mmynk/republica/internal/calculator"
	"github.com/mmynk/republica/internal/config"
	"github.com/mmynk/republica/internal/finance"
	"github.com/mmynk/republica/internal/models"
	"github.com/mmynk/republica/internal/queue"
	"github.com/mmynk/republica/internal/storage/sqlite"
)

const usage = `Usage: ledgerctl <command> [flags]

Commands:
  addgroup   create a republic
  addmember  create a member account in a republic
  bill       request the monthly billing of a republic
  dashboard  print a member's financial snapshot
`

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		if err == flag.ErrHelp {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	if len(args) == 0 {
		fmt.Fprint(stdout, usage)
		return fmt.Errorf("missing command")
	}

	cfg := config.Load()
	ctx := context.Background()

	switch args[0] {
	case "addgroup":
		return addGroup(ctx, cfg, args[1:], stdout, stderr)
	case "addmember":
		return addMember(ctx, cfg, args[1:], stdin, stdout, stderr)
	case "bill":
		return bill(ctx, cfg, args[1:], stdout, stderr)
	case "dashboard":
		return dashboard(ctx, cfg, args[1:], stdout, stderr)
	case "help", "-h", "--help":
		fmt.Fprint(stdout, usage)
		return flag.ErrHelp
	default:
		fmt.Fprint(stdout, usage)
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func addGroup(ctx context.Context, cfg *config.Config, args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("addgroup", flag.ContinueOnError)
	fs.SetOutput(stderr)

	name := fs.String("name", "", "Republic name")
	dbPath := fs.String("db", cfg.DBPath, "Path to database file")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if strings.TrimSpace(*name) == "" {
		fmt.Fprintln(stdout, "Usage: ledgerctl addgroup -name <name> [-db <db_path>]")
		fs.PrintDefaults()
		return fmt.Errorf("missing required flags: name")
	}

	store, err := sqlite.New(*dbPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer store.Close()

	group := &models.Group{Name: strings.TrimSpace(*name)}
	if err := store.CreateGroup(ctx, group); err != nil {
		return fmt.Errorf("failed to create group: %w", err)
	}

	fmt.Fprintf(stdout, "Group %s created with ID %s (join code %s)\n", group.Name, group.ID, group.JoinCode)
	return nil
}

func addMember(ctx context.Context, cfg *config.Config, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("addmember", flag.ContinueOnError)
	fs.SetOutput(stderr)

	groupID := fs.String("group", "", "Group ID")
	name := fs.String("name", "", "Display name")
	email := fs.String("email", "", "Login email")
	role := fs.String("role", string(models.RoleResident), "Role: admin, admin_finance or morador")
	rent := fs.String("rent", "0", "Fixed monthly rent")
	passwordFlag := fs.String("password", "", "Password (optional, will prompt if omitted)")
	dbPath := fs.String("db", cfg.DBPath, "Path to database file")

	if err := fs.Parse(args); err != nil {
		return err
	}

	var missing []string
	for _, f := range []struct{ name, value string }{{"group", *groupID}, {"name", *name}, {"email", *email}} {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		fmt.Fprintln(stdout, "Usage: ledgerctl addmember -group <id> -name <name> -email <email> [-role <role>] [-rent <amount>] [-password <password>] [-db <db_path>]")
		fs.PrintDefaults()
		return fmt.Errorf("missing required flags: %s", strings.Join(missing, ", "))
	}

	memberRole := models.Role(*role)
	if !memberRole.Valid() {
		return fmt.Errorf("invalid role %q", *role)
	}
	fixedRent, err := decimal.NewFromString(*rent)
	if err != nil || fixedRent.IsNegative() || !calculator.HasCentPrecision(fixedRent) || calculator.ExceedsMax(fixedRent) {
		return fmt.Errorf("invalid rent %q", *rent)
	}

	password := *passwordFlag
	if password == "" {
		fmt.Fprint(stdout, "Password: ")
		password, err = readPassword(stdin)
		if err != nil {
			return fmt.Errorf("failed to read password: %w", err)
		}
		fmt.Fprintln(stdout) // newline after password input
	}

	store, err := sqlite.New(*dbPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer store.Close()

	if _, err := store.GetGroup(ctx, *groupID); err != nil {
		return fmt.Errorf("group %s: %w", *groupID, err)
	}

	member := &models.Member{
		Name:      strings.TrimSpace(*name),
		Email:     strings.TrimSpace(*email),
		GroupID:   *groupID,
		Role:      memberRole,
		FixedRent: fixedRent,
	}
	err = auth.NewPasswordAuthenticator(store).Register(ctx, member, password)
	if errors.Is(err, auth.ErrEmailExists) {
		return fmt.Errorf("member %s already exists", member.Email)
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(stdout, "Member %s created successfully with ID %s\n", member.Email, member.ID)
	return nil
}

func bill(ctx context.Context, cfg *config.Config, args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("bill", flag.ContinueOnError)
	fs.SetOutput(stderr)

	memberID := fs.String("as", "", "Finance admin member ID the billing runs for")
	period := fs.String("period", "", "Month to bill as YYYY-MM (default: current month)")
	allowDuplicate := fs.Bool("allow-duplicate", false, "Bill templates again even if already billed for the period")
	local := fs.Bool("local", false, "Run billing directly against the database instead of publishing to AMQP")
	dbPath := fs.String("db", cfg.DBPath, "Path to database file (with -local)")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if *memberID == "" {
		fmt.Fprintln(stdout, "Usage: ledgerctl bill -as <member_id> [-period YYYY-MM] [-allow-duplicate] [-local] [-db <db_path>]")
		fs.PrintDefaults()
		return fmt.Errorf("missing required flags: as")
	}

	if *local {
		store, err := sqlite.New(*dbPath)
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer store.Close()

		ledger := finance.New(store, finance.WithDueDay(cfg.BillingDueDay))
		caller, err := ledger.IdentityOf(ctx, *memberID)
		if err != nil {
			return err
		}
		res, err := ledger.RunMonthlyBilling(ctx, caller, finance.BillingOptions{
			Period:         *period,
			AllowDuplicate: *allowDuplicate,
		})
		if err != nil {
			return err
		}

		fmt.Fprintf(stdout, "Billed %s: %d generated, %d skipped\n", res.Period, res.Generated, res.Skipped)
		return nil
	}

	if err := cfg.RequireAMQP(); err != nil {
		return fmt.Errorf("%w (or use -local)", err)
	}
	client, err := queue.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		return fmt.Errorf("failed to connect to broker: %w", err)
	}
	defer client.Close()

	msg := queue.NewBillingRequest(*memberID, *period)
	msg.AllowDuplicate = *allowDuplicate
	if err := client.PublishBillingRequest(ctx, msg); err != nil {
		return err
	}

	fmt.Fprintln(stdout, "Billing request queued")
	return nil
}

func dashboard(ctx context.Context, cfg *config.Config, args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("dashboard", flag.ContinueOnError)
	fs.SetOutput(stderr)

	memberID := fs.String("member", "", "Member ID")
	dbPath := fs.String("db", cfg.DBPath, "Path to database file")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if *memberID == "" {
		fmt.Fprintln(stdout, "Usage: ledgerctl dashboard -member <member_id> [-db <db_path>]")
		fs.PrintDefaults()
		return fmt.Errorf("missing required flags: member")
	}

	store, err := sqlite.New(*dbPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer store.Close()

	ledger := finance.New(store)
	caller, err := ledger.IdentityOf(ctx, *memberID)
	if err != nil {
		return err
	}
	d, err := ledger.GetDashboard(ctx, caller)
	if err != nil {
		return err
	}

	rows := []struct {
		label string
		value decimal.Decimal
	}{
		{"Aluguel fixo", d.FixedRent},
		{"Despesas variáveis", d.VariableDebts},
		{"Meus créditos", d.MyCredits},
		{"Total a pagar", d.TotalToPay},
		{"Saldo", d.UserBalance},
		{"Caixinha", d.CashboxBalance},
		{"Despesas da república", d.TotalGroupExpenses},
	}
	for _, row := range rows {
		fmt.Fprintf(stdout, "%-22s %s\n", row.label, formatAmount(row.value))
	}
	return nil
}

var printer = message.NewPrinter(language.BrazilianPortuguese)

// formatAmount renders a money value with Brazilian separators.
func formatAmount(v decimal.Decimal) string {
	return printer.Sprintf("R$ %.2f", v.InexactFloat64())
}

func readPassword(stdin io.Reader) (string, error) {
	// Check if stdin is a terminal
	if f, ok := stdin.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		bytePassword, err := term.ReadPassword(int(f.Fd()))
		if err != nil {
			return "", err
		}
		return string(bytePassword), nil
	}

	// Fallback for non-terminal (e.g. tests, pipes)
	scanner := bufio.NewScanner(stdin)
	if scanner.Scan() {
		return scanner.Text(), nil
	}
	if err := scanner.Err(); err != nil {
		return "", err
	}
	return "", io.EOF
}
