package gateway

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed cv.schema.json
var cvSchemaJSON []byte

var (
	cvSchemaOnce sync.Once
	cvSchema     *gojsonschema.Schema
	cvSchemaErr  error
)

// validateCvData checks a raw cvData document before it is decoded.
func validateCvData(raw []byte) error {
	cvSchemaOnce.Do(func() {
		cvSchema, cvSchemaErr = gojsonschema.NewSchema(gojsonschema.NewBytesLoader(cvSchemaJSON))
	})
	if cvSchemaErr != nil {
		return fmt.Errorf("load cv schema: %w", cvSchemaErr)
	}

	res, err := cvSchema.Validate(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return err
	}
	if res.Valid() {
		return nil
	}

	msgs := make([]string, 0, len(res.Errors()))
	for _, e := range res.Errors() {
		msgs = append(msgs, e.String())
	}
	return fmt.Errorf("cvData schema validation failed: %s", strings.Join(msgs, "; "))
}
