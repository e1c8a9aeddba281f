package catalog

import (
	"context"
	"errors"
	"sort"
	"strconv"

	"github.com/usamaejaz9741/pizza-shop/internal/pricing"
)

var ErrNotFound = errors.New("not found")

// InMemoryRepository backs tests and local development without Postgres.
type InMemoryRepository struct {
	settings   *StoreSettings
	categories map[string]*Category
	products   map[string]*Product
	variants   map[string]*Variant
	groups     map[string]*AddonGroup
	addons     map[string]*Addon
	links      map[string]map[string]bool // productID -> groupID set
	nextID     int
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		categories: make(map[string]*Category),
		products:   make(map[string]*Product),
		variants:   make(map[string]*Variant),
		groups:     make(map[string]*AddonGroup),
		addons:     make(map[string]*Addon),
		links:      make(map[string]map[string]bool),
	}
}

func (m *InMemoryRepository) id() string {
	m.nextID++
	return strconv.Itoa(m.nextID)
}

func (m *InMemoryRepository) GetSettings(ctx context.Context) (StoreSettings, error) {
	if m.settings == nil {
		return defaultSettings(StoreSettings{}), nil
	}
	return defaultSettings(*m.settings), nil
}

func (m *InMemoryRepository) UpsertSettings(ctx context.Context, s StoreSettings) error {
	m.settings = &s
	return nil
}

func (m *InMemoryRepository) ListCategories(ctx context.Context) ([]Category, error) {
	var out []Category
	for _, c := range m.categories {
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SortOrder < out[j].SortOrder })
	return out, nil
}

func (m *InMemoryRepository) CreateCategory(ctx context.Context, name string) (*Category, error) {
	max := 0
	for _, c := range m.categories {
		if c.SortOrder > max {
			max = c.SortOrder
		}
	}
	c := &Category{ID: m.id(), Name: name, SortOrder: max + 1, IsActive: true}
	m.categories[c.ID] = c
	return c, nil
}

func (m *InMemoryRepository) UpdateCategoryOrder(ctx context.Context, orders []CategoryOrder) error {
	for _, o := range orders {
		if c, ok := m.categories[o.ID]; ok {
			c.SortOrder = o.SortOrder
		}
	}
	return nil
}

func (m *InMemoryRepository) DeleteCategory(ctx context.Context, id string) error {
	delete(m.categories, id)
	return nil
}

func (m *InMemoryRepository) assemble(p Product) Product {
	p.Variants = []Variant{}
	p.AddonGroups = []AddonGroup{}

	for _, v := range m.variants {
		if v.ProductID == p.ID {
			p.Variants = append(p.Variants, *v)
		}
	}
	sort.Slice(p.Variants, func(i, j int) bool { return p.Variants[i].Price < p.Variants[j].Price })

	for groupID := range m.links[p.ID] {
		if g, ok := m.groups[groupID]; ok {
			p.AddonGroups = append(p.AddonGroups, m.assembleGroup(*g))
		}
	}
	sort.Slice(p.AddonGroups, func(i, j int) bool { return p.AddonGroups[i].Name < p.AddonGroups[j].Name })

	return p
}

func (m *InMemoryRepository) assembleGroup(g AddonGroup) AddonGroup {
	g.Addons = []Addon{}
	for _, a := range m.addons {
		if a.GroupID == g.ID {
			g.Addons = append(g.Addons, *a)
		}
	}
	sort.Slice(g.Addons, func(i, j int) bool { return g.Addons[i].Name < g.Addons[j].Name })
	return g
}

func (m *InMemoryRepository) ListProducts(ctx context.Context, activeOnly bool) ([]Product, error) {
	var out []Product
	for _, p := range m.products {
		if activeOnly && !p.IsActive {
			continue
		}
		out = append(out, m.assemble(*p))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *InMemoryRepository) GetProduct(ctx context.Context, id string) (*Product, error) {
	p, ok := m.products[id]
	if !ok {
		return nil, ErrNotFound
	}
	assembled := m.assemble(*p)
	return &assembled, nil
}

func (m *InMemoryRepository) CreateProduct(ctx context.Context, p *Product) error {
	p.ID = m.id()
	stored := *p
	m.products[p.ID] = &stored
	return nil
}

func (m *InMemoryRepository) SetProductStatus(ctx context.Context, id string, active bool) error {
	if p, ok := m.products[id]; ok {
		p.IsActive = active
	}
	return nil
}

func (m *InMemoryRepository) UpdateProductImage(ctx context.Context, id string, imageURL string) error {
	if p, ok := m.products[id]; ok {
		p.ImageURL = imageURL
	}
	return nil
}

func (m *InMemoryRepository) DeleteProduct(ctx context.Context, id string) error {
	delete(m.products, id)
	delete(m.links, id)
	return nil
}

func (m *InMemoryRepository) CreateVariant(ctx context.Context, v *Variant) error {
	v.ID = m.id()
	stored := *v
	m.variants[v.ID] = &stored
	return nil
}

func (m *InMemoryRepository) UpdateVariant(ctx context.Context, id, size, crust string, price pricing.Cents) error {
	if v, ok := m.variants[id]; ok {
		v.Size, v.Crust, v.Price = size, crust, price
	}
	return nil
}

func (m *InMemoryRepository) DeleteVariant(ctx context.Context, id string) error {
	delete(m.variants, id)
	return nil
}

func (m *InMemoryRepository) ListAddonGroups(ctx context.Context) ([]AddonGroup, error) {
	var out []AddonGroup
	for _, g := range m.groups {
		out = append(out, m.assembleGroup(*g))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *InMemoryRepository) CreateAddonGroup(ctx context.Context, g *AddonGroup) error {
	g.ID = m.id()
	stored := *g
	m.groups[g.ID] = &stored
	return nil
}

func (m *InMemoryRepository) DeleteAddonGroup(ctx context.Context, id string) error {
	delete(m.groups, id)
	for _, set := range m.links {
		delete(set, id)
	}
	return nil
}

func (m *InMemoryRepository) CreateAddon(ctx context.Context, a *Addon) error {
	a.ID = m.id()
	stored := *a
	m.addons[a.ID] = &stored
	return nil
}

func (m *InMemoryRepository) DeleteAddon(ctx context.Context, id string) error {
	delete(m.addons, id)
	return nil
}

func (m *InMemoryRepository) LinkAddonGroup(ctx context.Context, productID, groupID string) error {
	if m.links[productID] == nil {
		m.links[productID] = make(map[string]bool)
	}
	m.links[productID][groupID] = true
	return nil
}

func (m *InMemoryRepository) UnlinkAddonGroup(ctx context.Context, productID, groupID string) error {
	delete(m.links[productID], groupID)
	return nil
}
