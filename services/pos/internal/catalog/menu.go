package catalog

import (
	"context"
	"sort"
)

// MenuSnapshot is the full category/item tree handed to polling clients.
// There is no delta protocol: a watermark mismatch always yields the whole
// snapshot.
type MenuSnapshot struct {
	Watermark  int64          `json:"watermark"`
	Categories []MenuCategory `json:"categories"`
}

type MenuCategory struct {
	Category *Category `json:"category"`
	Items    []*Item   `json:"items"`
}

// BuildMenuSnapshot assembles the active category tree with available
// items, stamped with the given watermark.
func BuildMenuSnapshot(ctx context.Context, categories CategoryRepo, items ItemRepo, mark int64) (*MenuSnapshot, error) {
	cats, err := categories.List(ctx)
	if err != nil {
		return nil, err
	}

	snapshot := &MenuSnapshot{Watermark: mark}
	for _, cat := range cats {
		if !cat.Active {
			continue
		}
		catItems, err := items.ListByCategory(ctx, cat.ID)
		if err != nil {
			return nil, err
		}
		available := make([]*Item, 0, len(catItems))
		for _, item := range catItems {
			if item.Available {
				available = append(available, item)
			}
		}
		sort.Slice(available, func(i, j int) bool {
			return available[i].Name < available[j].Name
		})
		snapshot.Categories = append(snapshot.Categories, MenuCategory{
			Category: cat,
			Items:    available,
		})
	}

	sort.Slice(snapshot.Categories, func(i, j int) bool {
		return snapshot.Categories[i].Category.Name < snapshot.Categories[j].Category.Name
	})

	return snapshot, nil
}
