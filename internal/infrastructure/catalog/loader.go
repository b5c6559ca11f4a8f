package catalog

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"

	"github.com/greentail/backend/internal/domain"
	"gopkg.in/yaml.v3"
)

//go:embed default_catalog.yaml
var defaultCatalog []byte

// catalogFile is the on-disk layout of a catalog YAML file
type catalogFile struct {
	Products []domain.Product `yaml:"products"`
}

// LoadDefault builds a repository from the embedded catalog
func LoadDefault() (*Repository, error) {
	return Load(bytes.NewReader(defaultCatalog))
}

// LoadFile builds a repository from a YAML catalog on disk
func LoadFile(path string) (*Repository, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", domain.ErrCatalogUnavailable, path, err)
	}
	defer f.Close()

	return Load(f)
}

// Load decodes a YAML catalog. Unknown fields are rejected.
func Load(r io.Reader) (*Repository, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var file catalogFile
	if err := dec.Decode(&file); err != nil {
		return nil, fmt.Errorf("%w: decode catalog: %v", domain.ErrCatalogUnavailable, err)
	}

	return NewRepository(file.Products)
}
