package dashboard

import (
	"slices"

	"github.com/tphakala/weatherdash/internal/apiclient"
)

// Action identifies a dashboard operation.
type Action string

const (
	ActionLoad   Action = "load"
	ActionAdd    Action = "add"
	ActionDelete Action = "delete"
	ActionSync   Action = "sync"
)

// Result is the outcome of one remote call, fed to Reduce.
type Result struct {
	Action    Action
	Favorites []apiclient.FavoriteCity // ActionLoad
	Added     *apiclient.FavoriteCity  // ActionAdd
	DeletedID int64                    // ActionDelete
	Err       error
}

// Reduce returns the favorites list after applying r to list.
//
// A successful load replaces the list wholesale and a failed load empties
// it. Add appends in server-create order, delete removes by id, and any
// other failure leaves the list as it was. The returned slice never shares
// its backing array with list or r.Favorites.
func Reduce(list []apiclient.FavoriteCity, r Result) []apiclient.FavoriteCity {
	switch r.Action {
	case ActionLoad:
		if r.Err != nil {
			return []apiclient.FavoriteCity{}
		}
		return cloneList(r.Favorites)
	case ActionAdd:
		if r.Err != nil || r.Added == nil {
			return cloneList(list)
		}
		return append(cloneList(list), *r.Added)
	case ActionDelete:
		if r.Err != nil {
			return cloneList(list)
		}
		return slices.DeleteFunc(cloneList(list), func(fc apiclient.FavoriteCity) bool {
			return fc.ID == r.DeletedID
		})
	default:
		return cloneList(list)
	}
}

func cloneList(list []apiclient.FavoriteCity) []apiclient.FavoriteCity {
	out := make([]apiclient.FavoriteCity, len(list), len(list)+1)
	copy(out, list)
	return out
}
