package index

// ResourceIndex defines the interface for resource indexing operations.
// Consumers should depend on this interface rather than the concrete *DB type
// to facilitate testing with mocks.
type ResourceIndex interface {
	UpsertResource(r ResourceRow, body string, links []LinkRow) error
	DeleteResource(path string) error
	GetResource(path string) (*ResourceRow, error)
	GetChecksum(path string) (string, error)
	ListResources(limit, offset int, tag, typ, sort string) ([]ResourceRow, int, error)
	Search(query string, limit int) ([]SearchResult, error)
	Graph() ([]GraphNode, []GraphLink, error)
	Backlinks(target string) ([]string, error)
	Links(source string) ([]LinkRow, error)
	AllPaths() (map[string]struct{}, error)
	AllChecksums() (map[string]string, error)
	Close() error
}

// Verify *DB satisfies ResourceIndex at compile time.
var _ ResourceIndex = (*DB)(nil)
