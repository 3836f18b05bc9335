// Command storefront is an interactive terminal client for the
// shop API. It keeps a local state store with an optimistic cart,
// reconciles cart changes against the server when logged in, and
// persists the guest cart to disk between runs.
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/lumoshop/storefront/internal/client"
	"github.com/lumoshop/storefront/internal/localcart"
	"github.com/lumoshop/storefront/internal/loyalty"
	"github.com/lumoshop/storefront/internal/model"
	"github.com/lumoshop/storefront/internal/pricing"
	"github.com/lumoshop/storefront/internal/state"
	cartsync "github.com/lumoshop/storefront/internal/sync"
)

const requestTimeout = 10 * time.Second

// app ties the pieces together for the command loop.
type app struct {
	api   *client.Client
	store *state.Store
	rec   *cartsync.Reconciler
	disk  *localcart.Store
}

func main() {
	_ = godotenv.Load()
	base := os.Getenv("STOREFRONT_API")
	if base == "" {
		base = "http://localhost:8080"
	}

	a := &app{
		api:  client.New(base),
		disk: localcart.New(""),
	}

	// Restore the guest cart saved by a previous run.
	saved, err := a.disk.Load()
	if err != nil {
		log.Printf("storefront: discarding saved cart: %v", err)
	}
	a.store = state.New(state.State{Cart: saved})
	a.rec = cartsync.New(a.store, a.api)

	// Persist the guest cart on every change so a crash loses
	// nothing. Logged-in carts live on the server instead.
	a.store.Subscribe(func(s state.State) {
		if s.IsLogin {
			return
		}
		if err := a.disk.Save(s.Cart); err != nil {
			log.Printf("storefront: save cart: %v", err)
		}
	})

	fmt.Println("storefront: type 'help' for commands")
	sc := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !sc.Scan() {
			break
		}
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		if fields[0] == "quit" || fields[0] == "exit" {
			break
		}
		if err := a.run(fields[0], fields[1:]); err != nil {
			fmt.Println("error:", err)
		}
	}
	a.rec.Flush()
}

func (a *app) run(cmd string, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	switch cmd {
	case "help":
		printHelp()
		return nil
	case "register":
		return a.register(ctx, args)
	case "login":
		return a.login(ctx, args)
	case "logout":
		return a.logout()
	case "me":
		return a.me(ctx)
	case "products":
		return a.products(ctx, args)
	case "product":
		return a.product(ctx, args)
	case "categories":
		return a.categories(ctx)
	case "add":
		return a.add(ctx, args)
	case "qty":
		return a.qty(args)
	case "remove":
		return a.remove(args)
	case "cart":
		return a.cart(ctx)
	case "checkout":
		return a.checkout(ctx, args)
	case "orders":
		return a.orders(ctx)
	case "receive":
		return a.receive(ctx, args)
	default:
		return fmt.Errorf("unknown command %q (try 'help')", cmd)
	}
}

func printHelp() {
	fmt.Print(`commands:
  register <email> <password> [name]   create an account and sign in
  login <email> <password>             sign in; merges server cart
  logout                               sign out; cart becomes guest-local
  me                                   show account, points and level
  products [category] [search]         list the catalog
  product <id>                         show one product with bulk prices
  categories                           list categories
  add <product-id> [qty]               add to cart
  qty <product-id> <delta>             change quantity by delta
  remove <product-id>                  remove from cart
  cart                                 show cart with totals
  checkout <name> <phone> <address>    place the order
  orders                               list my orders
  receive <order-id>                   confirm receipt, earn points
  quit
`)
}

// ----- session -----

func (a *app) register(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return errors.New("usage: register <email> <password> [name]")
	}
	name := ""
	if len(args) > 2 {
		name = strings.Join(args[2:], " ")
	}
	s, err := a.api.Register(ctx, args[0], args[1], name)
	if err != nil {
		return err
	}
	return a.afterAuth(ctx, s)
}

func (a *app) login(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return errors.New("usage: login <email> <password>")
	}
	s, err := a.api.Login(ctx, args[0], args[1])
	if err != nil {
		return err
	}
	return a.afterAuth(ctx, s)
}

// afterAuth merges the local guest cart into the server cart, then
// hands hydration to the reconciler and drops the on-disk copy.
func (a *app) afterAuth(ctx context.Context, s *client.Session) error {
	for _, it := range a.store.State().Cart {
		if err := a.api.UpsertCartItem(ctx, it.ProductID, it.Quantity); err != nil {
			log.Printf("storefront: merge cart line %s: %v", it.ProductID, err)
		}
	}
	if err := a.rec.HandleLogin(ctx, &s.User); err != nil {
		return err
	}
	if err := a.disk.Clear(); err != nil {
		log.Printf("storefront: clear saved cart: %v", err)
	}
	fmt.Printf("signed in as %s (%s, %d points)\n", s.User.Name, s.User.Level, s.User.Points)
	return nil
}

func (a *app) logout() error {
	if err := a.rec.HandleLogout(); err != nil {
		return err
	}
	a.api.SetToken("")
	fmt.Println("signed out")
	return nil
}

func (a *app) me(ctx context.Context) error {
	u, err := a.api.Me(ctx)
	if err != nil {
		return err
	}
	prog := loyalty.ProgressFor(u.Points, loyalty.DefaultTable)
	fmt.Printf("%s <%s>\n  level %s, %d points", u.Name, u.Email, u.Level, u.Points)
	if prog.NextTier != nil {
		fmt.Printf(" (%.0f%% to %s, %d points to go)", prog.Percent, prog.NextTier.Level, prog.PointsToNext)
	}
	fmt.Println()
	return nil
}

// ----- catalog -----

func (a *app) products(ctx context.Context, args []string) error {
	category, search := "", ""
	if len(args) > 0 {
		category = args[0]
	}
	if len(args) > 1 {
		search = strings.Join(args[1:], " ")
	}
	ps, err := a.api.Products(ctx, category, search)
	if err != nil {
		return err
	}
	a.store.Dispatch(state.SetProducts{Products: ps})
	for _, p := range ps {
		fmt.Printf("  %-14s %8d  %s (stock %d, %.1f★)\n", p.ID, p.Price, p.Name, p.Stock, p.Rating)
	}
	return nil
}

func (a *app) product(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: product <id>")
	}
	p, err := a.api.Product(ctx, args[0])
	if err != nil {
		return err
	}
	fmt.Printf("%s (%d)\n%s\n", p.Name, p.Price, p.Description)
	for _, t := range pricing.DefaultBulkTiers {
		if t.DiscountPercent == 0 {
			continue
		}
		q := pricing.QuoteLine(p.Price, int(t.Min), pricing.DefaultBulkTiers)
		fmt.Printf("  %d+ units: %d each (%d%% off)\n", t.Min, q.DiscountedUnitPrice, t.DiscountPercent)
	}
	rs, err := a.api.Reviews(ctx, p.ID)
	if err == nil {
		for _, r := range rs {
			fmt.Printf("  [%d★] %s: %s\n", r.Rating, r.UserName, r.Content)
		}
	}
	return nil
}

func (a *app) categories(ctx context.Context) error {
	cs, err := a.api.Categories(ctx)
	if err != nil {
		return err
	}
	a.store.Dispatch(state.SetCategories{Categories: cs})
	for _, c := range cs {
		fmt.Printf("  %-14s %s\n", c.ID, c.Name)
	}
	return nil
}

// ----- cart -----

func (a *app) add(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return errors.New("usage: add <product-id> [qty]")
	}
	qty := 1
	if len(args) > 1 {
		n, err := strconv.Atoi(args[1])
		if err != nil || n < 1 {
			return errors.New("qty must be a positive number")
		}
		qty = n
	}
	p, err := a.api.Product(ctx, args[0])
	if err != nil {
		return err
	}
	if err := a.rec.Add(*p, qty); err != nil {
		return err
	}
	fmt.Printf("added %d × %s\n", qty, p.Name)
	return nil
}

func (a *app) qty(args []string) error {
	if len(args) != 2 {
		return errors.New("usage: qty <product-id> <delta>")
	}
	delta, err := strconv.Atoi(args[1])
	if err != nil || delta == 0 {
		return errors.New("delta must be a non-zero number")
	}
	err = a.rec.ChangeQuantity(args[0], delta)
	if errors.Is(err, cartsync.ErrWouldRemove) {
		return errors.New("that would empty the line; use 'remove' instead")
	}
	return err
}

func (a *app) remove(args []string) error {
	if len(args) != 1 {
		return errors.New("usage: remove <product-id>")
	}
	return a.rec.Remove(args[0])
}

func (a *app) cart(ctx context.Context) error {
	s := a.store.State()
	if len(s.Cart) == 0 {
		fmt.Println("cart is empty")
		return nil
	}
	var percent int64
	if s.UserInfo != nil {
		percent = loyalty.DiscountFor(s.UserInfo.Level, loyalty.DefaultTable)
	}
	// Totals run over the bulk-discounted unit prices, the same
	// composition checkout uses, so the displayed amount matches
	// what the server will actually charge.
	repriced := make([]model.CartItem, 0, len(s.Cart))
	for _, it := range s.Cart {
		q := pricing.QuoteLine(it.Price, it.Quantity, pricing.DefaultBulkTiers)
		fmt.Printf("  %-14s %3d × %6d = %8d", it.ProductID, it.Quantity, q.DiscountedUnitPrice, q.LineTotal)
		if q.DiscountPercent > 0 {
			fmt.Printf("  (bulk -%d%%)", q.DiscountPercent)
		}
		if st := a.rec.Status(it.ProductID); st != cartsync.StatusIdle {
			fmt.Printf("  [%s]", st)
		}
		fmt.Println()

		line := it
		line.Price = q.DiscountedUnitPrice
		repriced = append(repriced, line)
	}
	t := pricing.CartTotals(repriced, percent)
	fmt.Printf("subtotal %d", t.Subtotal)
	if t.DiscountAmount > 0 {
		fmt.Printf(", loyalty -%d%% = -%d", t.DiscountPercent, t.DiscountAmount)
	}
	fmt.Printf(", total %d\n", t.Total)
	return nil
}

// ----- orders -----

func (a *app) checkout(ctx context.Context, args []string) error {
	if len(args) < 3 {
		return errors.New("usage: checkout <name> <phone> <address...>")
	}
	s := a.store.State()
	if !s.IsLogin {
		return errors.New("sign in before checking out")
	}
	if len(s.Cart) == 0 {
		return errors.New("cart is empty")
	}
	a.rec.Flush() // every cart line must be on the server first

	lines := make([]client.OrderLine, 0, len(s.Cart))
	for _, it := range s.Cart {
		lines = append(lines, client.OrderLine{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			Price:     it.Price,
		})
	}
	rec, err := a.api.CreateOrder(ctx, lines, client.ShippingInfo{
		Name:    args[0],
		Phone:   args[1],
		Address: strings.Join(args[2:], " "),
	})
	if err != nil {
		return err
	}
	// The server cleared its cart inside the order transaction.
	if err := a.rec.Clear(); err != nil {
		return err
	}
	fmt.Printf("order %s placed: total %d", rec.OrderID, rec.FinalAmount)
	if rec.DiscountAmount > 0 {
		fmt.Printf(" (saved %d)", rec.DiscountAmount)
	}
	fmt.Printf(", %d points on receipt\n", rec.PointsEarned)
	return nil
}

func (a *app) orders(ctx context.Context) error {
	list, err := a.api.MyOrders(ctx)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		fmt.Println("no orders yet")
		return nil
	}
	for _, o := range list {
		fmt.Printf("  %s  %-10s %8d  %s\n", o.ID, o.Status, o.FinalAmount, o.CreatedAt.Format("2006-01-02"))
	}
	return nil
}

func (a *app) receive(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: receive <order-id>")
	}
	if err := a.api.ConfirmReceipt(ctx, args[0]); err != nil {
		return err
	}
	u, err := a.api.Me(ctx)
	if err != nil {
		return err
	}
	a.store.Dispatch(state.SetUserInfo{User: u})
	fmt.Printf("received. you now have %d points (%s)\n", u.Points, u.Level)
	return nil
}
