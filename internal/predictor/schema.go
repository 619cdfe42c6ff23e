package predictor

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

// ErrInvalidArtifact is returned when an artifact does not match the schema of its kind.
var ErrInvalidArtifact = errors.New("invalid artifact")

//go:embed schemas/*.schema.json
var schemaFS embed.FS

var (
	schemaCacheMu sync.Mutex
	schemaCache   = make(map[string]*jsonschema.Schema)
)

const schemaBaseURL = "file:///snipcheck/schemas/"

var extractorKinds = map[string]bool{
	KindTFIDF:           true,
	KindAST:             true,
	KindGeminiEmbedding: true,
	KindOllamaEmbedding: true,
}

var classifierKinds = map[string]bool{
	KindLinear:      true,
	KindMultiOutput: true,
	KindPresence:    true,
}

// ValidateArtifact checks data against the schema for its kind and returns the kind.
func ValidateArtifact(data []byte) (string, error) {
	kind, err := Kind(data)
	if err != nil {
		return "", err
	}
	if err := validateKind(kind, data); err != nil {
		return "", err
	}
	return kind, nil
}

func validateKind(kind string, data []byte) error {
	if !extractorKinds[kind] && !classifierKinds[kind] {
		return fmt.Errorf("%q: %w", kind, ErrUnknownKind)
	}
	schema, err := loadCompiledSchema(kind)
	if err != nil {
		return fmt.Errorf("failed to compile %s schema: %w", kind, err)
	}

	var v interface{}
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidArtifact, err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidArtifact, kind, err)
	}
	return nil
}

func loadCompiledSchema(kind string) (*jsonschema.Schema, error) {
	schemaCacheMu.Lock()
	defer schemaCacheMu.Unlock()
	if cached, ok := schemaCache[kind]; ok {
		return cached, nil
	}

	raw, err := fs.ReadFile(schemaFS, "schemas/"+kind+".schema.json")
	if err != nil {
		return nil, err
	}
	url := schemaBaseURL + kind + ".schema.json"
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(url, bytes.NewReader(raw)); err != nil {
		return nil, err
	}
	compiled, err := compiler.Compile(url)
	if err != nil {
		return nil, err
	}
	schemaCache[kind] = compiled
	return compiled, nil
}
