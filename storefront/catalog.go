package storefront

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

// Category is a catalog grouping returned by the remote API.
type Category struct {
	ID       int
	ParentID int
	Name     string
}

// Money is a price amount in a specific currency.
type Money struct {
	Amount   decimal.Decimal
	Currency currency.Unit
}

// Product is a catalog item. It satisfies bag.ProductRef, so a fetched
// product can be passed straight to bag.Add and bag.Remove.
type Product struct {
	ID          int
	Name        string
	Description string
	Price       Money
}

// BagProductID implements bag.ProductRef.
func (p Product) BagProductID() int { return p.ID }

// Page selects a slice of a listing; zero values leave the server defaults.
type Page struct {
	Limit  int
	Offset int
}

func (p Page) query(values url.Values) url.Values {
	if p.Limit > 0 {
		values.Set("limit", strconv.Itoa(p.Limit))
	}
	if p.Offset > 0 {
		values.Set("offset", strconv.Itoa(p.Offset))
	}
	return values
}

// PageInfo echoes the listing window the server actually served.
type PageInfo struct {
	Total  int
	Limit  int
	Offset int
}

type categoryPayload struct {
	CategoryID int    `json:"category_id"`
	ParentID   int    `json:"parent_id"`
	Name       string `json:"name"`
}

func (p categoryPayload) toCategory() Category {
	return Category{
		ID:       p.CategoryID,
		ParentID: p.ParentID,
		Name:     strings.TrimSpace(p.Name),
	}
}

type pricePayload struct {
	Amount   string `json:"amount"`
	Currency string `json:"currency"`
}

type productPayload struct {
	ProductID   int           `json:"product_id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Price       *pricePayload `json:"price"`
}

func (p productPayload) toProduct() (Product, error) {
	product := Product{
		ID:          p.ProductID,
		Name:        strings.TrimSpace(p.Name),
		Description: strings.TrimSpace(p.Description),
	}
	if p.Price == nil || strings.TrimSpace(p.Price.Amount) == "" {
		return product, nil
	}

	amount, err := decimal.NewFromString(strings.TrimSpace(p.Price.Amount))
	if err != nil {
		return Product{}, fmt.Errorf("%w: product %d price amount %q: %v", ErrRemote, p.ProductID, p.Price.Amount, err)
	}
	unit, err := currency.ParseISO(strings.TrimSpace(p.Price.Currency))
	if err != nil {
		return Product{}, fmt.Errorf("%w: product %d price currency %q: %v", ErrRemote, p.ProductID, p.Price.Currency, err)
	}
	product.Price = Money{Amount: amount, Currency: unit}
	return product, nil
}

// Categories lists the catalog's categories. The list is fetched once and
// cached on the client; an empty category list from the server is an
// ErrNoResult failure, never silently defaulted.
func (c *Client) Categories(ctx context.Context) ([]Category, error) {
	c.mu.Lock()
	cached := c.categories
	c.mu.Unlock()
	if cached != nil {
		return append([]Category(nil), cached...), nil
	}

	trail := &Trail{}
	env, err := c.send(ctx, http.MethodGet, "categories", nil, nil, trail)
	if err != nil {
		return nil, wrapFailure(err, trail)
	}

	var payloads []categoryPayload
	if dataPresent(env.Data) {
		if err := json.Unmarshal(env.Data, &payloads); err != nil {
			return nil, wrapFailure(fmt.Errorf("%w: decoding categories: %v", ErrRemote, err), trail)
		}
	}
	if len(payloads) == 0 {
		return nil, wrapFailure(fmt.Errorf("%w: no categories", ErrNoResult), trail)
	}

	categories := make([]Category, 0, len(payloads))
	for _, payload := range payloads {
		categories = append(categories, payload.toCategory())
	}

	c.mu.Lock()
	c.categories = categories
	c.mu.Unlock()
	return append([]Category(nil), categories...), nil
}

// ProductsByCategory lists the products of one category.
func (c *Client) ProductsByCategory(ctx context.Context, categoryID int, page Page) ([]Product, PageInfo, error) {
	if categoryID < 0 {
		return nil, PageInfo{}, wrapFailure(fmt.Errorf("storefront: negative category id %d", categoryID), &Trail{})
	}
	path := "categories/" + strconv.Itoa(categoryID) + "/products"
	return c.listProducts(ctx, path, page.query(url.Values{}))
}

// Search lists the products matching a free-text query.
func (c *Client) Search(ctx context.Context, query string, page Page) ([]Product, PageInfo, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, PageInfo{}, wrapFailure(fmt.Errorf("storefront: search query is required"), &Trail{})
	}
	values := page.query(url.Values{})
	values.Set("q", query)
	return c.listProducts(ctx, "products/search", values)
}

func (c *Client) listProducts(ctx context.Context, path string, values url.Values) ([]Product, PageInfo, error) {
	trail := &Trail{}
	env, err := c.send(ctx, http.MethodGet, path, values, nil, trail)
	if err != nil {
		return nil, PageInfo{}, wrapFailure(err, trail)
	}

	var payloads []productPayload
	if dataPresent(env.Data) {
		if err := json.Unmarshal(env.Data, &payloads); err != nil {
			return nil, PageInfo{}, wrapFailure(fmt.Errorf("%w: decoding products: %v", ErrRemote, err), trail)
		}
	}

	products := make([]Product, 0, len(payloads))
	for _, payload := range payloads {
		product, err := payload.toProduct()
		if err != nil {
			return nil, PageInfo{}, wrapFailure(err, trail)
		}
		products = append(products, product)
	}

	var info PageInfo
	if total, ok := env.metaInt("total"); ok {
		info.Total = total
	}
	if limit, ok := env.metaInt("limit"); ok {
		info.Limit = limit
	}
	if offset, ok := env.metaInt("offset"); ok {
		info.Offset = offset
	}
	return products, info, nil
}

// Product fetches a single catalog item by id.
func (c *Client) Product(ctx context.Context, id int) (Product, error) {
	trail := &Trail{}
	if id < 0 {
		return Product{}, wrapFailure(fmt.Errorf("storefront: negative product id %d", id), trail)
	}

	env, err := c.send(ctx, http.MethodGet, "products/"+strconv.Itoa(id), nil, nil, trail)
	if err != nil {
		return Product{}, wrapFailure(err, trail)
	}
	if !dataPresent(env.Data) {
		return Product{}, wrapFailure(fmt.Errorf("%w: no product data", ErrNoResult), trail)
	}

	var payload productPayload
	if err := json.Unmarshal(env.Data, &payload); err != nil {
		return Product{}, wrapFailure(fmt.Errorf("%w: decoding product: %v", ErrRemote, err), trail)
	}
	product, err := payload.toProduct()
	if err != nil {
		return Product{}, wrapFailure(err, trail)
	}
	return product, nil
}
