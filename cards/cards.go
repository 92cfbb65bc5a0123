// Package cards projects active orders into the card list shown on the
// barista dashboard. Everything here is pure: rendering and re-filtering
// never touch the database.
package cards

import (
	"fmt"
	"strings"
	"time"

	"github.com/brewline/coffee-shop/models"
)

// Filter values accepted by Render and Filter.
const (
	FilterAll       = "all"
	FilterPending   = models.StatusPending
	FilterPreparing = models.StatusPreparing
)

// Action labels by status.
const (
	ActionStartPreparing = "Start Preparing"
	ActionMarkAsDone     = "Mark as Done"
)

// Item is one order line on a card: quantity x name, with variant and size
// as secondary detail.
type Item struct {
	Quantity   int    `json:"quantity"`
	CoffeeName string `json:"coffee_name"`
	Detail     string `json:"detail"`
}

// Card is the display projection of a single active order.
type Card struct {
	ID            string `json:"id"`
	OrderCode     string `json:"order_code"`
	Status        string `json:"status"`
	PlacedAgo     string `json:"placed_ago"`
	CustomerName  string `json:"customer_name"`
	AvatarInitial string `json:"avatar_initial"`
	Items         []Item `json:"items"`
	ActionLabel   string `json:"action_label"`
}

// List is a rendered card list. Empty is true iff no card is visible, so the
// caller can show an explicit empty-state indicator instead of a blank grid.
type List struct {
	Cards []Card `json:"cards"`
	Empty bool   `json:"empty"`
}

// Build projects orders into cards without filtering. The relative
// timestamps are computed against now.
func Build(orders []models.Order, now time.Time) []Card {
	out := make([]Card, 0, len(orders))
	for i := range orders {
		out = append(out, buildCard(&orders[i], now))
	}
	return out
}

// Render builds and filters in one pass, for the initial load.
func Render(orders []models.Order, filter string, now time.Time) List {
	return Filter(Build(orders, now), filter)
}

// Filter narrows an already-built card list to the selected status. "all"
// shows every card. This is what a filter-control click runs: no refetch,
// just a comparison of each card's stored status against the selection.
func Filter(all []Card, filter string) List {
	if filter == FilterAll {
		return List{Cards: all, Empty: len(all) == 0}
	}
	visible := make([]Card, 0, len(all))
	for _, c := range all {
		if c.Status == filter {
			visible = append(visible, c)
		}
	}
	return List{Cards: visible, Empty: len(visible) == 0}
}

func buildCard(o *models.Order, now time.Time) Card {
	items := make([]Item, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, Item{
			Quantity:   it.Quantity,
			CoffeeName: it.CoffeeName,
			Detail:     fmt.Sprintf("%s, %s", it.Variant, it.Size),
		})
	}

	return Card{
		ID:            o.ID,
		OrderCode:     o.ShortCode(),
		Status:        o.Status,
		PlacedAgo:     FormatRelativeTime(o.CreatedAt, now),
		CustomerName:  o.CustomerName(),
		AvatarInitial: AvatarInitial(o.UserName),
		Items:         items,
		ActionLabel:   actionLabel(o.Status),
	}
}

func actionLabel(status string) string {
	if status == models.StatusPending {
		return ActionStartPreparing
	}
	return ActionMarkAsDone
}

// AvatarInitial derives the single-letter avatar from the first character of
// the customer name, defaulting to "C" when the name is absent.
func AvatarInitial(name string) string {
	if name == "" {
		return "C"
	}
	return strings.ToUpper(string([]rune(name)[0:1]))
}

// FormatRelativeTime renders an order timestamp the way the dashboard shows
// it: "Just now" under a minute, "<n> min ago" under an hour, "<n>h ago"
// under a day (minutes dropped), then a plain date.
func FormatRelativeTime(t, now time.Time) string {
	minutes := int(now.Sub(t).Minutes())

	if minutes < 1 {
		return "Just now"
	}
	if minutes < 60 {
		return fmt.Sprintf("%d min ago", minutes)
	}

	hours := minutes / 60
	if hours < 24 {
		return fmt.Sprintf("%dh ago", hours)
	}

	return t.Format("Jan 2, 2006")
}
