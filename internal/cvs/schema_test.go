package cvs

import (
	"errors"
	"testing"
)

func TestValidatePayload(t *testing.T) {
	cases := []struct {
		name    string
		payload string
		wantErr bool
	}{
		{
			name:    "minimal valid",
			payload: `{"personalInfo": {"firstName": "Awa"}}`,
		},
		{
			name:    "legacy spellings pass the schema",
			payload: `{"personalInfo": {"prenom": "Awa", "nom": "Diop"}, "competences": ["SAGE"], "langues": [{"name": "Wolof"}]}`,
		},
		{
			name:    "string skills allowed",
			payload: `{"personalInfo": {}, "skills": ["Go", {"name": "SQL", "level": 4}]}`,
		},
		{
			name:    "missing personalInfo",
			payload: `{"experience": []}`,
			wantErr: true,
		},
		{
			name:    "experience must be an array",
			payload: `{"personalInfo": {}, "experience": {"title": "Comptable"}}`,
			wantErr: true,
		},
		{
			name:    "fontSize must be numeric",
			payload: `{"personalInfo": {}, "customization": {"fontSize": "quatorze"}}`,
			wantErr: true,
		},
		{
			name:    "not json",
			payload: `bonjour`,
			wantErr: true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidatePayload([]byte(tc.payload))
			if tc.wantErr {
				if !errors.Is(err, ErrInvalidInput) {
					t.Fatalf("err = %v, want ErrInvalidInput", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}
