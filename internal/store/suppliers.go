package store

import (
	"encoding/json"
	"fmt"
	"os"
	"slices"

	"github.com/rshade/eventcarbon/internal/estimate"
)

// Supplier is a vendor asked to provide activity data for one or more events.
type Supplier struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Email      string          `json:"email,omitempty"`
	Categories []estimate.Kind `json:"categories,omitempty"`
	EventIDs   []string        `json:"event_ids,omitempty"`
}

// SupplierID is the key function for supplier repositories.
func SupplierID(s Supplier) string { return s.ID }

// Assign links the supplier to an event once.
func (s *Supplier) Assign(eventID string) bool {
	if slices.Contains(s.EventIDs, eventID) {
		return false
	}
	s.EventIDs = append(s.EventIDs, eventID)
	return true
}

// Covers reports whether the supplier collects data for kind.
// A supplier with no categories covers everything.
func (s Supplier) Covers(kind estimate.Kind) bool {
	return len(s.Categories) == 0 || slices.Contains(s.Categories, kind)
}

// supplierFile is the on-disk shape of the supplier directory.
type supplierFile struct {
	SchemaVersion string     `json:"schema_version"`
	Suppliers     []Supplier `json:"suppliers"`
}

// LoadSuppliers reads the supplier directory at path into a repository.
// A missing file yields an empty repository.
func LoadSuppliers(path string) (*Repository[Supplier], error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return NewRepository(SupplierID), nil
		}
		return nil, fmt.Errorf("failed to read supplier directory: %w", err)
	}

	var file supplierFile
	if err = json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to unmarshal supplier directory: %w", err)
	}
	if err = checkSchema(file.SchemaVersion); err != nil {
		return nil, fmt.Errorf("supplier directory: %w", err)
	}
	return NewRepository(SupplierID, file.Suppliers...), nil
}

// SaveSuppliers writes the repository to path atomically.
func SaveSuppliers(path string, repo *Repository[Supplier]) error {
	data, err := json.MarshalIndent(supplierFile{
		SchemaVersion: SessionSchemaVersion,
		Suppliers:     repo.List(),
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal supplier directory: %w", err)
	}
	return writeFileAtomic(path, data)
}
