// Command console is the operator entry point: it logs in against the admin
// service and drives the moderation queues and dashboard views from the
// command line.
//
// Usage:
//
//	console stats
//	console overview
//	console performers
//	console list <entity> <tab> [page]
//	console counts <entity>
//	console approve <entity> <tab> <itemId> [transactionId]
//	console reject <entity> <tab> <itemId> <reason...>
//	console payment-status <paymentId> <pending|rejected>
//	console tpin-generate <userId> <quantity> <reason...>
//	console deactivate <userId> <reason...>
//	console activate <userId>
//
// Entities: payments, tpins, withdrawals, recharges, crypto, accounts.
// Item arguments accept either the record id or the user's public id code.
// Credentials come from ADMIN_EMAIL / ADMIN_PASSWORD (or a .env file).
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"adminconsole/internal/adapters"
	"adminconsole/internal/api"
	"adminconsole/internal/dashboard"
	"adminconsole/internal/domain"
	"adminconsole/internal/moderation"
	"adminconsole/internal/notify"
	"adminconsole/internal/session"
	"adminconsole/pkg/config"
	apperrors "adminconsole/pkg/errors"
	"adminconsole/pkg/logger"

	"github.com/joho/godotenv"
)

type console struct {
	cfg      *config.Config
	sess     *session.Session
	client   *api.Client
	notifier *notify.Channel
	stats    *dashboard.Service

	payments    *moderation.Queue[domain.PaymentPayload]
	tpins       *moderation.Queue[domain.TpinPayload]
	withdrawals *moderation.Queue[domain.WithdrawalPayload]
	recharges   *moderation.Queue[domain.RechargePayload]
	crypto      *moderation.Queue[domain.CryptoPayload]
	accounts    *moderation.Queue[domain.AccountPayload]

	paymentAdapter *adapters.Payments
	tpinAdapter    *adapters.Tpins
	accountAdapter *adapters.Accounts
}

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	applog := logger.New("console")

	if len(os.Args) < 2 {
		log.Fatal("usage: console <stats|overview|performers|list|counts|approve|reject|payment-status|tpin-generate|activate|deactivate> ...")
	}

	sess := session.New(applog)
	client := api.NewClient(cfg.API, sess, applog)
	notifier := notify.NewChannel(cfg.Notification.AutoHideAfter)

	ctx := context.Background()
	creds := session.Credentials{
		Email:    os.Getenv("ADMIN_EMAIL"),
		Password: os.Getenv("ADMIN_PASSWORD"),
	}
	admin, err := sess.Login(ctx, client, creds)
	if err != nil {
		log.Fatalf("login failed: %v", err)
	}
	defer sess.Logout()
	fmt.Printf("logged in as %s (%s)\n", admin.Name, admin.Email)

	paymentAdapter := adapters.NewPayments(client, applog)
	tpinAdapter := adapters.NewTpins(client, applog)
	accountAdapter := adapters.NewAccounts(client, applog)
	c := &console{
		cfg:      cfg,
		sess:     sess,
		client:   client,
		notifier: notifier,
		stats:    dashboard.NewService(client, applog),

		payments:    moderation.NewQueue[domain.PaymentPayload](paymentAdapter, notifier, applog),
		tpins:       moderation.NewQueue[domain.TpinPayload](tpinAdapter, notifier, applog),
		withdrawals: moderation.NewQueue[domain.WithdrawalPayload](adapters.NewWithdrawals(client, cfg.Paging.PageSize, applog), notifier, applog),
		recharges:   moderation.NewQueue[domain.RechargePayload](adapters.NewRecharges(client, cfg.Paging.PageSize, applog), notifier, applog),
		crypto:      moderation.NewQueue[domain.CryptoPayload](adapters.NewCrypto(client, applog), notifier, applog),
		accounts:    moderation.NewQueue[domain.AccountPayload](accountAdapter, notifier, applog),

		paymentAdapter: paymentAdapter,
		tpinAdapter:    tpinAdapter,
		accountAdapter: accountAdapter,
	}

	if err := c.run(ctx, os.Args[1], os.Args[2:]); err != nil {
		log.Fatalf("%s: %v", os.Args[1], err)
	}

	if n, ok := notifier.Current(); ok {
		fmt.Printf("[%s] %s\n", n.Severity, n.Message)
	}
}

func (c *console) run(ctx context.Context, cmd string, args []string) error {
	switch cmd {
	case "stats":
		stats, err := c.stats.Stats(ctx)
		if err != nil {
			return err
		}
		return printJSON(stats)
	case "overview":
		overview, err := c.stats.MlmOverview(ctx)
		if err != nil {
			return err
		}
		return printJSON(overview)
	case "performers":
		performers, err := c.stats.TopPerformers(ctx)
		if err != nil {
			return err
		}
		return printJSON(performers)
	case "list":
		if len(args) < 2 {
			return fmt.Errorf("usage: list <entity> <tab> [page]")
		}
		page := 1
		if len(args) > 2 {
			page, _ = strconv.Atoi(args[2])
		}
		return c.dispatch(args[0], func(q queueOps) error { return q.list(ctx, args[1], page) })
	case "counts":
		if len(args) < 1 {
			return fmt.Errorf("usage: counts <entity>")
		}
		c.seedBadges(ctx, args[0])
		return c.dispatch(args[0], func(q queueOps) error { return q.counts(ctx) })
	case "approve":
		if len(args) < 3 {
			return fmt.Errorf("usage: approve <entity> <tab> <itemId> [transactionId]")
		}
		extra := moderation.Fields{}
		if len(args) > 3 {
			extra["transactionId"] = args[3]
		}
		return c.dispatch(args[0], func(q queueOps) error {
			return q.transition(ctx, args[1], args[2], domain.StateApproved, extra)
		})
	case "reject":
		if len(args) < 4 {
			return fmt.Errorf("usage: reject <entity> <tab> <itemId> <reason...>")
		}
		extra := moderation.Fields{"reason": strings.Join(args[3:], " ")}
		return c.dispatch(args[0], func(q queueOps) error {
			return q.transition(ctx, args[1], args[2], domain.StateRejected, extra)
		})
	case "payment-status":
		if len(args) < 2 {
			return fmt.Errorf("usage: payment-status <paymentId> <pending|rejected>")
		}
		msg, err := c.paymentAdapter.UpdateStatus(ctx, args[0], domain.State(args[1]))
		if err != nil {
			return err
		}
		fmt.Println(msg)
		return nil
	case "tpin-generate":
		if len(args) < 3 {
			return fmt.Errorf("usage: tpin-generate <userId> <quantity> <reason...>")
		}
		qty, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("quantity must be a number: %w", err)
		}
		msg, err := c.tpinAdapter.Generate(ctx, adapters.GenerateRequest{
			UserID:   args[0],
			Quantity: qty,
			Reason:   strings.Join(args[2:], " "),
		})
		if err != nil {
			return err
		}
		fmt.Println(msg)
		return nil
	case "deactivate":
		if len(args) < 2 {
			return fmt.Errorf("usage: deactivate <userId> <reason...>")
		}
		extra := moderation.Fields{"reason": strings.Join(args[1:], " ")}
		return c.dispatch("accounts", func(q queueOps) error {
			return q.transition(ctx, "all", args[0], domain.StateBlocked, extra)
		})
	case "activate":
		if len(args) < 1 {
			return fmt.Errorf("usage: activate <userId>")
		}
		return c.dispatch("accounts", func(q queueOps) error {
			return q.transition(ctx, "all", args[0], domain.StateActive, moderation.Fields{})
		})
	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
}

// seedBadges primes pending-tab badge fallbacks from the summary endpoints so
// a tab whose load fails still shows a figure.
func (c *console) seedBadges(ctx context.Context, entity string) {
	switch entity {
	case "payments", "tpins":
		stats, err := c.stats.Stats(ctx)
		if err != nil {
			return
		}
		c.payments.Coordinator.SetSummaryCount("pending", stats.UserStats.PendingSubscriptions)
		c.tpins.Coordinator.SetSummaryCount("pending", stats.UserStats.PendingTpins)
	case "withdrawals":
		overview, err := c.stats.MlmOverview(ctx)
		if err != nil {
			return
		}
		c.withdrawals.Coordinator.SetSummaryCount("pending", overview.PendingWithdrawals)
	case "recharges":
		stats, err := c.stats.InvestmentStats(ctx)
		if err != nil {
			return
		}
		c.recharges.Coordinator.SetSummaryCount("pending", stats.PendingRecharges)
	}
}

// queueOps is the untyped surface the dispatcher needs over each typed queue.
type queueOps interface {
	list(ctx context.Context, tabName string, page int) error
	counts(ctx context.Context) error
	transition(ctx context.Context, tabName, itemID string, target domain.State, extra moderation.Fields) error
}

func (c *console) dispatch(entity string, fn func(queueOps) error) error {
	switch entity {
	case "payments":
		return fn(ops[domain.PaymentPayload]{c.payments})
	case "tpins":
		return fn(ops[domain.TpinPayload]{c.tpins})
	case "withdrawals":
		return fn(ops[domain.WithdrawalPayload]{c.withdrawals})
	case "recharges":
		return fn(ops[domain.RechargePayload]{c.recharges})
	case "crypto":
		return fn(ops[domain.CryptoPayload]{c.crypto})
	case "accounts":
		return fn(ops[domain.AccountPayload]{c.accounts})
	default:
		return fmt.Errorf("unknown entity %q", entity)
	}
}

type ops[P any] struct {
	q *moderation.Queue[P]
}

func (o ops[P]) list(ctx context.Context, tabName string, page int) error {
	tab, ok := o.q.Tab(tabName)
	if !ok {
		return fmt.Errorf("unknown tab %q for %s", tabName, o.q.Adapter.Entity())
	}
	if err := o.q.Coordinator.Select(ctx, tab); err != nil {
		return err
	}
	if page > 1 {
		if err := o.q.Pager.GoToPage(ctx, tab, page); err != nil {
			return err
		}
	}
	snap := o.q.Store.Snapshot(tab)
	for _, item := range snap.Items {
		fmt.Printf("%-26s %-10s %-24s %s\n", item.ID, item.State, item.Owner.Name, item.Owner.Email)
	}
	if snap.Pagination != nil {
		fmt.Printf("page %d of %d (%d total)\n", snap.Pagination.Page, snap.Pagination.TotalPages, snap.Pagination.TotalCount)
	} else {
		fmt.Printf("%d items\n", len(snap.Items))
	}
	return nil
}

func (o ops[P]) counts(ctx context.Context) error {
	for _, tab := range o.q.Adapter.Tabs() {
		if err := o.q.Coordinator.Select(ctx, tab); err != nil {
			fmt.Printf("%-10s %d (stale: %v)\n", tab.Name, o.q.Coordinator.BadgeCount(tab), err)
			continue
		}
		fmt.Printf("%-10s %d\n", tab.Name, o.q.Coordinator.BadgeCount(tab))
	}
	return nil
}

func (o ops[P]) transition(ctx context.Context, tabName, itemID string, target domain.State, extra moderation.Fields) error {
	tab, ok := o.q.Tab(tabName)
	if !ok {
		return fmt.Errorf("unknown tab %q for %s", tabName, o.q.Adapter.Entity())
	}
	if err := o.q.Coordinator.Select(ctx, tab); err != nil {
		return err
	}
	item, ok := o.q.Find(tab, itemID)
	if !ok {
		return apperrors.Wrap(apperrors.ErrNotFound, fmt.Sprintf("item %q on tab %q", itemID, tabName))
	}
	return o.q.Controller.Execute(ctx, tab, item, target, extra)
}

func printJSON(v interface{}) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}
