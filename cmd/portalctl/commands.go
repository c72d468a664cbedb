package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/urfave/cli/v2"

	"github.com/carson-networks/payments-portal/internal/apperr"
	"github.com/carson-networks/payments-portal/internal/client"
	"github.com/carson-networks/payments-portal/internal/currency"
)

func registrationFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "name", Required: true},
		&cli.StringFlag{Name: "surname", Required: true},
		&cli.StringFlag{Name: "id-number", Required: true, Usage: "national identity number"},
		&cli.StringFlag{Name: "email", Required: true},
		&cli.StringFlag{Name: "password", EnvVars: []string{"PORTAL_PASSWORD"}, Usage: "read from stdin when empty"},
	}
}

func commands(s *appState) []*cli.Command {
	return []*cli.Command{
		{
			Name:   "register",
			Usage:  "create a user account",
			Flags:  registrationFlags(),
			Action: s.register,
		},
		{
			Name:  "login",
			Usage: "log in and keep the session",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "email", Required: true},
				&cli.StringFlag{Name: "password", EnvVars: []string{"PORTAL_PASSWORD"}, Usage: "read from stdin when empty"},
			},
			Action: s.login,
		},
		{
			Name:   "logout",
			Usage:  "revoke the session token",
			Action: s.logout,
		},
		{
			Name:  "pay",
			Usage: "submit a payment for approval",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "to", Required: true, Usage: "recipient email"},
				&cli.StringFlag{Name: "swift", Required: true, Usage: "recipient bank SWIFT code"},
				&cli.StringFlag{Name: "amount", Required: true},
				&cli.StringFlag{Name: "currency", Value: string(currency.USD), Usage: "one of " + supportedCurrencies()},
				&cli.BoolFlag{Name: "yes", Aliases: []string{"y"}, Usage: "submit without the confirmation prompt"},
			},
			Action: s.pay,
		},
		{
			Name:   "balance",
			Usage:  "show the balance and statement",
			Action: s.balance,
		},
		{
			Name:   "history",
			Usage:  "list transactions, newest first",
			Action: s.history,
		},
		{
			Name:   "summary",
			Usage:  "show money in vs money out",
			Action: s.summary,
		},
		{
			Name:   "pending",
			Usage:  "list payments awaiting a decision (admin)",
			Action: s.pending,
		},
		{
			Name:      "approve",
			Usage:     "approve a pending payment (admin)",
			ArgsUsage: "<payment-id>",
			Action:    s.decide(true),
		},
		{
			Name:      "reject",
			Usage:     "reject a pending payment (admin)",
			ArgsUsage: "<payment-id>",
			Action:    s.decide(false),
		},
		{
			Name:   "add-admin",
			Usage:  "create another administrator (admin)",
			Flags:  registrationFlags(),
			Action: s.addAdmin,
		},
	}
}

func (s *appState) register(c *cli.Context) error {
	reg, err := registrationFrom(c)
	if err != nil {
		return err
	}
	user, err := s.api.Register(c.Context, reg)
	if err != nil {
		return err
	}
	s.dump(c, user)
	fmt.Fprintf(c.App.Writer, "registered %s (%s)\n", user.Email, user.ID)
	return nil
}

func (s *appState) addAdmin(c *cli.Context) error {
	reg, err := registrationFrom(c)
	if err != nil {
		return err
	}
	user, err := s.api.AddAdmin(c.Context, reg)
	if err != nil {
		return err
	}
	s.dump(c, user)
	fmt.Fprintf(c.App.Writer, "added admin %s (%s)\n", user.Email, user.ID)
	return nil
}

func (s *appState) login(c *cli.Context) error {
	password, err := passwordFrom(c)
	if err != nil {
		return err
	}
	user, err := s.api.Login(c.Context, c.String("email"), password)
	if err != nil {
		return err
	}
	s.dump(c, user)
	fmt.Fprintf(c.App.Writer, "logged in as %s %s (%s)\n", user.Name, user.Surname, user.Role)
	return nil
}

func (s *appState) logout(c *cli.Context) error {
	if err := s.api.Logout(c.Context); err != nil {
		return err
	}
	fmt.Fprintln(c.App.Writer, "logged out")
	return nil
}

func (s *appState) pay(c *cli.Context) error {
	draft, err := client.BuildDraft(c.String("to"), c.String("swift"), c.String("amount"), c.String("currency"))
	if err != nil {
		return err
	}

	fmt.Fprintf(c.App.Writer, "pay %s %s to %s via %s = %s %s\n",
		draft.OriginalAmount, draft.Currency, draft.RecipientEmail, draft.SwiftCode,
		draft.Amount.StringFixed(2), currency.Settlement)

	if !c.Bool("yes") {
		ok, err := confirm(c.App.Reader, c.App.Writer, "submit for approval? [y/N] ")
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(c.App.Writer, "cancelled")
			return nil
		}
	}

	view := client.NewLedgerView(s.api)
	tx, err := client.NewPaymentBuilder(s.api, view.Refresh).Submit(c.Context, draft.Confirm())
	if err != nil {
		return err
	}
	s.dump(c, tx)
	fmt.Fprintf(c.App.Writer, "submitted %s, status %s\n", tx.ID, tx.Status)
	fmt.Fprintf(c.App.Writer, "balance %s %s\n", view.Balance().StringFixed(2), currency.Settlement)
	return nil
}

func (s *appState) balance(c *cli.Context) error {
	view := client.NewLedgerView(s.api)
	if err := view.Refresh(c.Context); err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "balance %s %s\n", view.Balance().StringFixed(2), currency.Settlement)
	return writeTransactions(c.App.Writer, view.History())
}

func (s *appState) history(c *cli.Context) error {
	view := client.NewLedgerView(s.api)
	if err := view.Refresh(c.Context); err != nil {
		return err
	}
	s.dump(c, view.History())
	return writeTransactions(c.App.Writer, view.History())
}

func (s *appState) summary(c *cli.Context) error {
	summary, err := s.api.Summary(c.Context)
	if err != nil {
		return err
	}
	s.dump(c, summary)
	if summary.NoData {
		fmt.Fprintln(c.App.Writer, "no transactions yet")
		return nil
	}
	fmt.Fprintf(c.App.Writer, "money in  %s %s\nmoney out %s %s\n",
		summary.MoneyIn.StringFixed(2), currency.Settlement,
		summary.MoneyOut.StringFixed(2), currency.Settlement)
	return nil
}

func (s *appState) pending(c *cli.Context) error {
	pending, err := client.NewApprovalQueue(s.api).Refresh(c.Context)
	if err != nil {
		return err
	}
	s.dump(c, pending)
	return writeTransactions(c.App.Writer, pending)
}

func (s *appState) decide(approve bool) cli.ActionFunc {
	return func(c *cli.Context) error {
		id, err := uuid.FromString(c.Args().First())
		if err != nil {
			return fmt.Errorf("payment id %q: %w", c.Args().First(), apperr.ErrValidation)
		}

		queue := client.NewApprovalQueue(s.api)
		decide := queue.Reject
		if approve {
			decide = queue.Approve
		}

		tx, err := decide(c.Context, id)
		if errors.Is(err, apperr.ErrConflict) {
			fmt.Fprintf(c.App.Writer, "payment %s was already decided, %d still pending\n", id, len(queue.Pending()))
			return err
		}
		if err != nil {
			return err
		}
		s.dump(c, tx)
		fmt.Fprintf(c.App.Writer, "payment %s %s, %d still pending\n", tx.ID, tx.Status, len(queue.Pending()))
		return nil
	}
}

func registrationFrom(c *cli.Context) (client.Registration, error) {
	password, err := passwordFrom(c)
	if err != nil {
		return client.Registration{}, err
	}
	return client.Registration{
		Name:     c.String("name"),
		Surname:  c.String("surname"),
		IDNumber: c.String("id-number"),
		Email:    c.String("email"),
		Password: password,
	}, nil
}

func passwordFrom(c *cli.Context) (string, error) {
	if password := c.String("password"); password != "" {
		return password, nil
	}
	fmt.Fprint(c.App.ErrWriter, "password: ")
	line, err := bufio.NewReader(c.App.Reader).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	password := strings.TrimRight(line, "\r\n")
	if password == "" {
		return "", fmt.Errorf("password is required: %w", apperr.ErrValidation)
	}
	return password, nil
}

func confirm(in io.Reader, out io.Writer, prompt string) (bool, error) {
	fmt.Fprint(out, prompt)
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, err
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes", nil
}

func writeTransactions(out io.Writer, txs []client.Transaction) error {
	if len(txs) == 0 {
		_, err := fmt.Fprintln(out, "no transactions")
		return err
	}
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tDATE\tTYPE\tFROM\tTO\tAMOUNT\tORIGINAL\tSTATUS")
	for _, tx := range txs {
		kind := string(tx.TransactionType)
		if kind == "" {
			kind = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s %s\t%s\n",
			tx.ID, tx.CreatedAt.Format(time.DateTime), kind,
			party(tx.SenderName, tx.SenderID), party(tx.RecipientName, tx.RecipientID),
			tx.Amount.StringFixed(2), tx.OriginalAmount, tx.OriginalCurrency, tx.Status)
	}
	return w.Flush()
}

func party(name string, id uuid.UUID) string {
	if name != "" {
		return name
	}
	return id.String()
}

func supportedCurrencies() string {
	codes := currency.Supported()
	names := make([]string, len(codes))
	for i, code := range codes {
		names[i] = string(code)
	}
	return strings.Join(names, ", ")
}
