package cvs

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// cvSchema is deliberately permissive about field spellings: the wizard
// has shipped several generations of payloads and the normalizer in
// cvdoc/model canonicalizes them. The schema guards shapes, not names.
const cvSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["personalInfo"],
  "properties": {
    "title": {"type": "string"},
    "template": {"type": "string"},
    "personalInfo": {
      "type": "object",
      "properties": {
        "firstName": {"type": "string"},
        "lastName": {"type": "string"},
        "prenom": {"type": "string"},
        "nom": {"type": "string"},
        "email": {"type": "string"},
        "phone": {"type": "string"},
        "address": {"type": "string"},
        "title": {"type": "string"},
        "summary": {"type": "string"},
        "photo": {"type": "string"}
      }
    },
    "experience": {
      "type": "array",
      "items": {"type": "object"}
    },
    "education": {
      "type": "array",
      "items": {"type": "object"}
    },
    "skills": {
      "type": "array",
      "items": {"type": ["object", "string"]}
    },
    "competences": {
      "type": "array",
      "items": {"type": ["object", "string"]}
    },
    "languages": {
      "type": "array",
      "items": {"type": "object"}
    },
    "langues": {
      "type": "array",
      "items": {"type": "object"}
    },
    "certifications": {
      "type": "array"
    },
    "projects": {
      "type": "array",
      "items": {"type": "object"}
    },
    "interests": {
      "type": "array",
      "items": {"type": "string"}
    },
    "customization": {
      "type": "object",
      "properties": {
        "primaryColor": {"type": "string"},
        "secondaryColor": {"type": "string"},
        "fontFamily": {"type": "string"},
        "fontSize": {"type": "number"},
        "spacing": {"type": "number"}
      }
    }
  }
}`

var compiledSchema = gojsonschema.NewStringLoader(cvSchema)

// ValidatePayload checks a raw CV payload against the schema and returns
// the field-level failures, one message per violation.
func ValidatePayload(raw []byte) error {
	result, err := gojsonschema.Validate(compiledSchema, gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if result.Valid() {
		return nil
	}

	msgs := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		msgs = append(msgs, desc.String())
	}
	return fmt.Errorf("%w: %s", ErrInvalidInput, strings.Join(msgs, "; "))
}
