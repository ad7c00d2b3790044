// Command storefront is a thin CLI over the storefront client library,
// useful for poking a catalog/checkout API during development.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/quayside/storefront-go/bag"
	"github.com/quayside/storefront-go/internal/config"
	"github.com/quayside/storefront-go/internal/observability"
	"github.com/quayside/storefront-go/storefront"
)

const usage = `usage: storefront [-config FILE] COMMAND [flags]

commands:
  categories                       list catalog categories
  products   -category ID          list products of a category
  product    -id ID                show one product
  search     -q QUERY              search products
  bag-add    -bag CODING -product ID [-qty N]   add to a bag coding
  bag-remove -bag CODING -product ID [-qty N]   remove from a bag coding (-1 removes all)
  checkout   -bag CODING [-field name=value ...] [-confirm]   drive the transaction flow
`

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "storefront:", err)
		os.Exit(1)
	}
}

type stringList []string

func (l *stringList) String() string { return strings.Join(*l, ",") }

func (l *stringList) Set(value string) error {
	*l = append(*l, value)
	return nil
}

func run(args []string) error {
	global := flag.NewFlagSet("storefront", flag.ExitOnError)
	configPath := global.String("config", "", "path to YAML config file")
	global.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	if err := global.Parse(args); err != nil {
		return err
	}
	if global.NArg() == 0 {
		global.Usage()
		return fmt.Errorf("missing command")
	}
	command, rest := global.Arg(0), global.Args()[1:]

	// Pure bag commands need no configuration or network.
	switch command {
	case "bag-add", "bag-remove":
		return runBag(command, rest)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	logger, err := observability.NewLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	client, err := storefront.New(cfg.BaseURL, storefront.Options{
		Token:   cfg.Token,
		Timeout: time.Duration(cfg.Timeout),
		Logger:  logger,
	})
	if err != nil {
		return err
	}

	ctx := context.Background()
	switch command {
	case "categories":
		return runCategories(ctx, client)
	case "products":
		return runProducts(ctx, client, rest)
	case "product":
		return runProduct(ctx, client, rest)
	case "search":
		return runSearch(ctx, client, rest)
	case "checkout":
		return runCheckout(ctx, client, logger, rest)
	default:
		global.Usage()
		return fmt.Errorf("unknown command %q", command)
	}
}

func runBag(command string, args []string) error {
	fs := flag.NewFlagSet(command, flag.ExitOnError)
	coding := fs.String("bag", "", "bag coding")
	product := fs.Int("product", -1, "product id")
	defaultQty := 1
	if command == "bag-remove" {
		defaultQty = bag.RemoveAll
	}
	qty := fs.Int("qty", defaultQty, "quantity")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var (
		next string
		err  error
	)
	if command == "bag-add" {
		next, err = bag.Add(*coding, bag.ID(*product), *qty)
	} else {
		next, err = bag.Remove(*coding, bag.ID(*product), *qty)
	}
	if err != nil {
		return err
	}
	fmt.Println(next)
	return nil
}

func runCategories(ctx context.Context, client *storefront.Client) error {
	categories, err := client.Categories(ctx)
	if err != nil {
		return err
	}
	for _, category := range categories {
		fmt.Printf("%d\t%s\n", category.ID, category.Name)
	}
	return nil
}

func runProducts(ctx context.Context, client *storefront.Client, args []string) error {
	fs := flag.NewFlagSet("products", flag.ExitOnError)
	category := fs.Int("category", 0, "category id")
	limit := fs.Int("limit", 0, "page size")
	offset := fs.Int("offset", 0, "page offset")
	if err := fs.Parse(args); err != nil {
		return err
	}

	products, info, err := client.ProductsByCategory(ctx, *category, storefront.Page{Limit: *limit, Offset: *offset})
	if err != nil {
		return err
	}
	printProducts(products)
	if info.Total > 0 {
		fmt.Printf("(%d of %d)\n", len(products), info.Total)
	}
	return nil
}

func runProduct(ctx context.Context, client *storefront.Client, args []string) error {
	fs := flag.NewFlagSet("product", flag.ExitOnError)
	id := fs.Int("id", -1, "product id")
	if err := fs.Parse(args); err != nil {
		return err
	}

	product, err := client.Product(ctx, *id)
	if err != nil {
		return err
	}
	printProducts([]storefront.Product{product})
	if product.Description != "" {
		fmt.Println(product.Description)
	}
	return nil
}

func runSearch(ctx context.Context, client *storefront.Client, args []string) error {
	fs := flag.NewFlagSet("search", flag.ExitOnError)
	query := fs.String("q", "", "search query")
	limit := fs.Int("limit", 0, "page size")
	offset := fs.Int("offset", 0, "page offset")
	if err := fs.Parse(args); err != nil {
		return err
	}

	products, info, err := client.Search(ctx, *query, storefront.Page{Limit: *limit, Offset: *offset})
	if err != nil {
		return err
	}
	printProducts(products)
	if info.Total > 0 {
		fmt.Printf("(%d of %d)\n", len(products), info.Total)
	}
	return nil
}

func printProducts(products []storefront.Product) {
	for _, product := range products {
		price := ""
		if !product.Price.Amount.IsZero() {
			price = product.Price.Amount.String() + " " + product.Price.Currency.String()
		}
		fmt.Printf("%d\t%s\t%s\n", product.ID, product.Name, price)
	}
}

func runCheckout(ctx context.Context, client *storefront.Client, logger *zap.Logger, args []string) error {
	fs := flag.NewFlagSet("checkout", flag.ExitOnError)
	coding := fs.String("bag", "", "bag coding")
	confirm := fs.Bool("confirm", false, "confirm when the quote is final")
	var fields stringList
	fs.Var(&fields, "field", "customer detail as name=value (repeatable)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	details := storefront.CustomerDetails{}
	for _, field := range fields {
		name, value, ok := strings.Cut(field, "=")
		if !ok {
			return fmt.Errorf("invalid -field %q, want name=value", field)
		}
		details[name] = value
	}

	result, err := client.CreateTransaction(ctx, *coding)
	if err != nil {
		return describeFailure(err)
	}
	current := *coding
	reference, checksum := "", ""
	current, reference, checksum = advance(result, current, reference, checksum)
	printResult(result)

	if len(details) > 0 {
		result, err = client.UpdateTransaction(ctx, current, reference, checksum, details)
		if err != nil {
			return describeFailure(err)
		}
		current, reference, checksum = advance(result, current, reference, checksum)
		printResult(result)
	}

	if *confirm && result.Status() == storefront.StatusFinal {
		result, err = client.ConfirmTransaction(ctx, current, reference, checksum)
		if err != nil {
			return describeFailure(err)
		}
		printResult(result)
	}

	logger.Info("checkout finished", zap.String("status", string(result.Status())))
	return nil
}

// advance folds a transaction result into the coding and token state the next
// call must send back.
func advance(result storefront.TransactionResult, coding, reference, checksum string) (string, string, string) {
	if result.ShoppingBag != nil {
		coding = *result.ShoppingBag
	}
	if result.Reference != nil {
		reference = *result.Reference
	}
	if result.Checksum != nil {
		checksum = *result.Checksum
	}
	return coding, reference, checksum
}

func printResult(result storefront.TransactionResult) {
	fmt.Println("status:", result.Status())
	if result.ShoppingBag != nil {
		fmt.Println("bag:", *result.ShoppingBag)
	}
	if result.Reference != nil {
		fmt.Println("reference:", *result.Reference)
	}
	for _, missing := range result.MissingCustomerDetails {
		fmt.Println("missing:", missing)
	}
	for _, warning := range result.Warnings {
		fmt.Println("warning:", warning)
	}
	for _, remoteErr := range result.Errors {
		fmt.Println("error:", remoteErr)
	}
	if result.Redirect != nil {
		fmt.Println("redirect:", *result.Redirect)
	}
}

func describeFailure(err error) error {
	if trail, ok := storefront.FailureTrail(err); ok {
		for _, entry := range trail {
			fmt.Fprintf(os.Stderr, "attempted %s %s (status %d)\n", entry.Method, entry.URL, entry.Status)
		}
	}
	return err
}
