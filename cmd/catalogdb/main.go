package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"text/tabwriter"

	"go.uber.org/zap"

	"Storefront/internal/catalog"
	"Storefront/pkg/config"
	"Storefront/pkg/db"
	"Storefront/pkg/kit"
	"Storefront/pkg/money"
)

const usage = `usage: catalogdb [-driver sqlite3|pgx] [-dsn DSN] <command> [flags]

commands:
  migrate   apply schema migrations
  seed      insert the default products when the table is empty
  list      print every product
  add       insert a product (-name -category -price -description -image [-id])
  remove    delete a product by id (-id)
`

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "catalogdb:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, out io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	fs := flag.NewFlagSet("catalogdb", flag.ContinueOnError)
	fs.Usage = func() { fmt.Fprint(fs.Output(), usage) }
	driver := fs.String("driver", cfg.DB.Driver, "sql driver")
	dsn := fs.String("dsn", cfg.DB.DSN, "data source name")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return errors.New("missing command")
	}
	if *driver == config.DriverMemory {
		return fmt.Errorf("driver %q has no table to manage", *driver)
	}

	log, err := kit.NewLogger("catalogdb", cfg.App.LogLevel)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	conn, err := db.Open(ctx, *driver, *dsn)
	if err != nil {
		return err
	}
	defer conn.Close()

	store := catalog.NewSQLStore(conn, *driver)
	cmd, rest := fs.Arg(0), fs.Args()[1:]

	switch cmd {
	case "migrate":
		return db.Migrate(ctx, conn, *driver, log)
	case "seed":
		n, err := store.SeedIfEmpty(ctx, catalog.SeedProducts())
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "inserted %d products\n", n)
		return nil
	case "list":
		return list(ctx, store, out)
	case "add":
		return add(ctx, store, rest, out, log)
	case "remove":
		return remove(ctx, store, rest, out, log)
	}
	fs.Usage()
	return fmt.Errorf("unknown command %q", cmd)
}

func list(ctx context.Context, store *catalog.SQLStore, out io.Writer) error {
	products, err := store.Products(ctx)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tCATEGORY\tNAME\tPRICE\tIMAGE")
	for _, p := range products {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", p.ID, p.Category, p.Name, money.Format(p.Price), p.ImagePath)
	}
	return tw.Flush()
}

func add(ctx context.Context, store *catalog.SQLStore, args []string, out io.Writer, log *zap.Logger) error {
	fs := flag.NewFlagSet("add", flag.ContinueOnError)
	id := fs.Int64("id", 0, "explicit product id (0 lets the database assign one)")
	name := fs.String("name", "", "product name")
	category := fs.String("category", "", "product category")
	price := fs.String("price", "", "unit price, e.g. 499.99")
	description := fs.String("description", "", "product description")
	image := fs.String("image", "", "image path")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *name == "" || *category == "" || *price == "" || *description == "" || *image == "" {
		return errors.New("add: -name, -category, -price, -description and -image are required")
	}

	amount, err := money.Parse(*price)
	if err != nil {
		return fmt.Errorf("add: %w", err)
	}

	p, err := store.Insert(ctx, catalog.Product{
		ID:          *id,
		Category:    *category,
		Name:        *name,
		Price:       amount,
		Description: *description,
		ImagePath:   *image,
	})
	if err != nil {
		return err
	}
	log.Info("product added", zap.Int64("product_id", p.ID), zap.String("name", p.Name))
	fmt.Fprintf(out, "added product %d\n", p.ID)
	return nil
}

func remove(ctx context.Context, store *catalog.SQLStore, args []string, out io.Writer, log *zap.Logger) error {
	fs := flag.NewFlagSet("remove", flag.ContinueOnError)
	raw := fs.String("id", "", "product id")
	if err := fs.Parse(args); err != nil {
		return err
	}
	id, err := strconv.ParseInt(*raw, 10, 64)
	if err != nil {
		return fmt.Errorf("remove: bad -id %q", *raw)
	}

	if err := store.Delete(ctx, id); err != nil {
		return err
	}
	log.Info("product removed", zap.Int64("product_id", id))
	fmt.Fprintf(out, "removed product %d\n", id)
	return nil
}
