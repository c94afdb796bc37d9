package event_bus

import "github.com/wilw-arch/WeeklyPlanWeb/pkg/week"

const (
	CollectionImportingEvent EventType = "collection.importing"
)

// CollectionImporting is published before an import replaces the collection.
// Previous holds the collection that is about to be discarded.
type CollectionImporting struct {
	Previous []week.Record
	Incoming int
}
