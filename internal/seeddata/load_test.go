package seeddata_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Additional-Code/bidentry/internal/config"
	"github.com/Additional-Code/bidentry/internal/seeddata"
)

func TestLoadDefaultSeed(t *testing.T) {
	data, err := seeddata.Load("")
	require.NoError(t, err)

	require.NotEmpty(t, data.Projects)
	require.NotEmpty(t, data.Proposals)
	assert.Equal(t, "Riverside Library Renovation", data.Projects[0].Name)
	assert.Equal(t, seeddata.ZipCode("62701"), data.Proposals[0].Zip)
	require.NoError(t, seeddata.Validate(data))
}

func TestParseKeepsInputOrder(t *testing.T) {
	data, err := seeddata.Parse([]byte(`
project:
  - name: first
  - name: second
  - name: third
proposal: []
`))
	require.NoError(t, err)

	names := make([]string, 0, len(data.Projects))
	for _, p := range data.Projects {
		names = append(names, p.Name)
	}
	assert.Equal(t, []string{"first", "second", "third"}, names)
	assert.Empty(t, data.Proposals)
}

func TestParseZipForms(t *testing.T) {
	data, err := seeddata.Parse([]byte(`
project: []
proposal:
  - zip: 62701
  - zip: "02134"
  - zip: 02134
  - zip:
  - companyName: no zip
`))
	require.NoError(t, err)
	require.Len(t, data.Proposals, 5)

	assert.Equal(t, seeddata.ZipCode("62701"), data.Proposals[0].Zip)
	assert.Equal(t, seeddata.ZipCode("02134"), data.Proposals[1].Zip)
	assert.Equal(t, seeddata.ZipCode("02134"), data.Proposals[2].Zip)
	assert.Equal(t, seeddata.ZipCode(""), data.Proposals[3].Zip)
	assert.Equal(t, seeddata.ZipCode(""), data.Proposals[4].Zip)
}

func TestParseRejectsNonScalarZip(t *testing.T) {
	_, err := seeddata.Parse([]byte(`
project: []
proposal:
  - zip: [1, 2]
`))
	require.Error(t, err)
}

func TestParseAcceptsJSON(t *testing.T) {
	data, err := seeddata.Parse([]byte(`{
  "project": [{"name": "Acme HQ"}],
  "proposal": [{"companyName": "Acme", "zip": 62701, "union": true}]
}`))
	require.NoError(t, err)
	assert.Equal(t, "Acme HQ", data.Projects[0].Name)
	assert.Equal(t, seeddata.ZipCode("62701"), data.Proposals[0].Zip)
	assert.True(t, data.Proposals[0].HasUnstoredFields())
}

func TestParseMissingSections(t *testing.T) {
	cases := map[string]string{
		"empty document":   ``,
		"missing proposal": "project: []\n",
		"missing project":  "proposal: []\n",
		"null project":     "project:\nproposal: []\n",
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := seeddata.Parse([]byte(doc))
			require.ErrorIs(t, err, seeddata.ErrMissingSection)
		})
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(path, []byte("project:\n  - name: Acme HQ\nproposal: []\n"), 0o600))

	data, err := seeddata.Load(path)
	require.NoError(t, err)
	require.Len(t, data.Projects, 1)
	assert.Equal(t, "Acme HQ", data.Projects[0].Name)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := seeddata.Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestValidateRejectsBadRecords(t *testing.T) {
	data := seeddata.Data{
		Projects: []seeddata.Project{{Name: "ok"}},
		Proposals: []seeddata.Proposal{
			{CompanyName: "Acme", Zip: "6270", EmailAddress: "not-an-email"},
		},
	}

	err := seeddata.Validate(data)
	require.Error(t, err)

	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fe.Field())
	}
	assert.ElementsMatch(t, []string{"Zip", "EmailAddress"}, fields)
}

func TestValidateAcceptsEmptyOptionalFields(t *testing.T) {
	data := seeddata.Data{
		Projects:  []seeddata.Project{{}},
		Proposals: []seeddata.Proposal{{}, {Zip: "62701-1234"}},
	}
	require.NoError(t, seeddata.Validate(data))
}

func TestFromConfigStrictMode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(path, []byte("project: []\nproposal:\n  - zip: abc\n"), 0o600))

	_, err := seeddata.FromConfig(config.Config{Seed: config.Seed{File: path}})
	require.NoError(t, err)

	_, err = seeddata.FromConfig(config.Config{Seed: config.Seed{File: path, Strict: true}})
	require.Error(t, err)
}
