package catalog

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/usamaejaz9741/pizza-shop/internal/pricing"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// --------------------------------------------------
// Settings (single restaurant_info JSON value)
// --------------------------------------------------

func (r *PostgresRepository) GetSettings(ctx context.Context) (StoreSettings, error) {
	var raw []byte

	err := r.db.QueryRow(ctx, `
		SELECT value
		FROM settings
		WHERE key = 'restaurant_info'
	`).Scan(&raw)

	if errors.Is(err, pgx.ErrNoRows) {
		return defaultSettings(StoreSettings{}), nil
	}
	if err != nil {
		return StoreSettings{}, err
	}

	var s StoreSettings
	if err := json.Unmarshal(raw, &s); err != nil {
		// Malformed settings row: fall back to defaults rather than
		// taking the storefront down.
		return defaultSettings(StoreSettings{}), nil
	}

	return defaultSettings(s), nil
}

func defaultSettings(s StoreSettings) StoreSettings {
	if s.Name == "" {
		s.Name = "Pizza Shop"
	}
	if s.Currency == "" {
		s.Currency = "$"
	}
	if s.Phone == "" {
		s.Phone = "923152967579"
	}
	if s.DeliveryFeeCents == 0 {
		s.DeliveryFeeCents = 299
	}
	if s.ThemeColor == "" {
		s.ThemeColor = "red"
	}
	return s
}

func (r *PostgresRepository) UpsertSettings(ctx context.Context, s StoreSettings) error {
	value, err := json.Marshal(s)
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, `
		INSERT INTO settings (key, value)
		VALUES ('restaurant_info', $1)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value
	`, value)

	return err
}

// --------------------------------------------------
// Categories
// --------------------------------------------------

func (r *PostgresRepository) ListCategories(ctx context.Context) ([]Category, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, name, sort_order, is_active
		FROM categories
		ORDER BY sort_order
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []Category
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.Name, &c.SortOrder, &c.IsActive); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}

	return categories, rows.Err()
}

func (r *PostgresRepository) CreateCategory(ctx context.Context, name string) (*Category, error) {
	c := Category{Name: name, IsActive: true}

	// Append after the current highest sort_order.
	err := r.db.QueryRow(ctx, `
		INSERT INTO categories (name, sort_order, is_active)
		VALUES ($1, COALESCE((SELECT MAX(sort_order) FROM categories), 0) + 1, true)
		RETURNING id, sort_order
	`, name).Scan(&c.ID, &c.SortOrder)
	if err != nil {
		return nil, err
	}

	return &c, nil
}

func (r *PostgresRepository) UpdateCategoryOrder(ctx context.Context, orders []CategoryOrder) error {
	for _, o := range orders {
		if _, err := r.db.Exec(ctx, `
			UPDATE categories
			SET sort_order = $1
			WHERE id = $2
		`, o.SortOrder, o.ID); err != nil {
			return err
		}
	}
	return nil
}

func (r *PostgresRepository) DeleteCategory(ctx context.Context, id string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	return err
}

// --------------------------------------------------
// Products (with variants and linked addon groups)
// --------------------------------------------------

func (r *PostgresRepository) ListProducts(ctx context.Context, activeOnly bool) ([]Product, error) {
	query := `
		SELECT id, category_id, name, description, image_url, is_active
		FROM products
	`
	if activeOnly {
		query += ` WHERE is_active = true`
	}
	query += ` ORDER BY name`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []Product
	index := make(map[string]int)

	for rows.Next() {
		var p Product
		if err := rows.Scan(&p.ID, &p.CategoryID, &p.Name, &p.Description, &p.ImageURL, &p.IsActive); err != nil {
			return nil, err
		}
		p.Variants = []Variant{}
		p.AddonGroups = []AddonGroup{}
		index[p.ID] = len(products)
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := r.attachVariants(ctx, products, index); err != nil {
		return nil, err
	}
	if err := r.attachGroups(ctx, products, index); err != nil {
		return nil, err
	}

	return products, nil
}

func (r *PostgresRepository) GetProduct(ctx context.Context, id string) (*Product, error) {
	var p Product

	err := r.db.QueryRow(ctx, `
		SELECT id, category_id, name, description, image_url, is_active
		FROM products
		WHERE id = $1
	`, id).Scan(&p.ID, &p.CategoryID, &p.Name, &p.Description, &p.ImageURL, &p.IsActive)
	if err != nil {
		return nil, err
	}

	p.Variants = []Variant{}
	p.AddonGroups = []AddonGroup{}

	products := []Product{p}
	index := map[string]int{p.ID: 0}

	if err := r.attachVariants(ctx, products, index); err != nil {
		return nil, err
	}
	if err := r.attachGroups(ctx, products, index); err != nil {
		return nil, err
	}

	return &products[0], nil
}

func (r *PostgresRepository) attachVariants(ctx context.Context, products []Product, index map[string]int) error {
	if len(products) == 0 {
		return nil
	}

	rows, err := r.db.Query(ctx, `
		SELECT id, product_id, size, crust, price, is_active
		FROM variants
		ORDER BY price
	`)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var v Variant
		var price int64
		if err := rows.Scan(&v.ID, &v.ProductID, &v.Size, &v.Crust, &price, &v.IsActive); err != nil {
			return err
		}
		v.Price = pricing.Cents(price)

		if i, ok := index[v.ProductID]; ok {
			products[i].Variants = append(products[i].Variants, v)
		}
	}

	return rows.Err()
}

func (r *PostgresRepository) attachGroups(ctx context.Context, products []Product, index map[string]int) error {
	if len(products) == 0 {
		return nil
	}

	groups, err := r.ListAddonGroups(ctx)
	if err != nil {
		return err
	}
	byID := make(map[string]AddonGroup, len(groups))
	for _, g := range groups {
		byID[g.ID] = g
	}

	rows, err := r.db.Query(ctx, `
		SELECT pag.product_id, pag.group_id
		FROM product_addon_groups pag
		JOIN addon_groups g ON g.id = pag.group_id
		ORDER BY g.name
	`)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var productID, groupID string
		if err := rows.Scan(&productID, &groupID); err != nil {
			return err
		}

		i, ok := index[productID]
		if !ok {
			continue
		}
		if g, ok := byID[groupID]; ok {
			products[i].AddonGroups = append(products[i].AddonGroups, g)
		}
	}

	return rows.Err()
}

func (r *PostgresRepository) CreateProduct(ctx context.Context, p *Product) error {
	return r.db.QueryRow(ctx, `
		INSERT INTO products (category_id, name, description, image_url, is_active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, p.CategoryID, p.Name, p.Description, p.ImageURL, p.IsActive).Scan(&p.ID)
}

func (r *PostgresRepository) SetProductStatus(ctx context.Context, id string, active bool) error {
	_, err := r.db.Exec(ctx, `
		UPDATE products SET is_active = $1 WHERE id = $2
	`, active, id)
	return err
}

func (r *PostgresRepository) UpdateProductImage(ctx context.Context, id string, imageURL string) error {
	_, err := r.db.Exec(ctx, `
		UPDATE products SET image_url = $1 WHERE id = $2
	`, imageURL, id)
	return err
}

func (r *PostgresRepository) DeleteProduct(ctx context.Context, id string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	return err
}

// --------------------------------------------------
// Variants
// --------------------------------------------------

func (r *PostgresRepository) CreateVariant(ctx context.Context, v *Variant) error {
	return r.db.QueryRow(ctx, `
		INSERT INTO variants (product_id, size, crust, price, is_active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, v.ProductID, v.Size, v.Crust, int64(v.Price), v.IsActive).Scan(&v.ID)
}

func (r *PostgresRepository) UpdateVariant(ctx context.Context, id, size, crust string, price pricing.Cents) error {
	_, err := r.db.Exec(ctx, `
		UPDATE variants
		SET size = $1, crust = $2, price = $3
		WHERE id = $4
	`, size, crust, int64(price), id)
	return err
}

func (r *PostgresRepository) DeleteVariant(ctx context.Context, id string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM variants WHERE id = $1`, id)
	return err
}

// --------------------------------------------------
// Addon groups & addons
// --------------------------------------------------

func (r *PostgresRepository) ListAddonGroups(ctx context.Context) ([]AddonGroup, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, name, type, min_select, max_select, is_required
		FROM addon_groups
		ORDER BY name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var groups []AddonGroup
	index := make(map[string]int)

	for rows.Next() {
		var g AddonGroup
		if err := rows.Scan(&g.ID, &g.Name, &g.Type, &g.MinSelect, &g.MaxSelect, &g.IsRequired); err != nil {
			return nil, err
		}
		g.Addons = []Addon{}
		index[g.ID] = len(groups)
		groups = append(groups, g)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	addonRows, err := r.db.Query(ctx, `
		SELECT id, group_id, name, price, is_active
		FROM addons
		ORDER BY name
	`)
	if err != nil {
		return nil, err
	}
	defer addonRows.Close()

	for addonRows.Next() {
		var a Addon
		var price int64
		if err := addonRows.Scan(&a.ID, &a.GroupID, &a.Name, &price, &a.IsActive); err != nil {
			return nil, err
		}
		a.Price = pricing.Cents(price)

		if i, ok := index[a.GroupID]; ok {
			groups[i].Addons = append(groups[i].Addons, a)
		}
	}

	return groups, addonRows.Err()
}

func (r *PostgresRepository) CreateAddonGroup(ctx context.Context, g *AddonGroup) error {
	return r.db.QueryRow(ctx, `
		INSERT INTO addon_groups (name, type, min_select, max_select, is_required)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, g.Name, g.Type, g.MinSelect, g.MaxSelect, g.IsRequired).Scan(&g.ID)
}

func (r *PostgresRepository) DeleteAddonGroup(ctx context.Context, id string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM addon_groups WHERE id = $1`, id)
	return err
}

func (r *PostgresRepository) CreateAddon(ctx context.Context, a *Addon) error {
	return r.db.QueryRow(ctx, `
		INSERT INTO addons (group_id, name, price, is_active)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, a.GroupID, a.Name, int64(a.Price), a.IsActive).Scan(&a.ID)
}

func (r *PostgresRepository) DeleteAddon(ctx context.Context, id string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM addons WHERE id = $1`, id)
	return err
}

// --------------------------------------------------
// Product <-> group links
// --------------------------------------------------

func (r *PostgresRepository) LinkAddonGroup(ctx context.Context, productID, groupID string) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO product_addon_groups (product_id, group_id)
		VALUES ($1, $2)
		ON CONFLICT (product_id, group_id) DO NOTHING
	`, productID, groupID)
	return err
}

func (r *PostgresRepository) UnlinkAddonGroup(ctx context.Context, productID, groupID string) error {
	_, err := r.db.Exec(ctx, `
		DELETE FROM product_addon_groups
		WHERE product_id = $1 AND group_id = $2
	`, productID, groupID)
	return err
}
