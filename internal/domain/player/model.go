package player

// Namespace identifies which source registry a curated player row came from.
type Namespace string

const (
	// NamespaceModern is the authoritative registry keyed by person id. It
	// carries biographical fields and always wins over the legacy registry.
	NamespaceModern Namespace = "modern"
	// NamespaceLegacy is the older registry keyed by its own integer id and
	// carries only a display name.
	NamespaceLegacy Namespace = "legacy"
)

// Player is one curated player row. Exactly one row survives per PlayerID
// after resolution; biographical fields stay nil when the player exists only
// in the legacy registry.
type Player struct {
	PlayerID  int64
	FullName  string
	Namespace Namespace

	BirthDate *string
	School    *string
	Country   *string
	Height    *string
	Weight    *string
	Position  *string
}
