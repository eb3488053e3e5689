package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "spigot.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadGenConfigDefaults(t *testing.T) {
	cfg, err := LoadGenConfig(writeConfig(t, "schema: public\n"))
	if err != nil {
		t.Fatalf("LoadGenConfig error: %v", err)
	}

	if cfg.Extension != ".go" {
		t.Errorf("Extension = %q, want .go", cfg.Extension)
	}
	if cfg.Templates != "./templates" {
		t.Errorf("Templates = %q, want ./templates", cfg.Templates)
	}
	if len(cfg.Artifacts) != 1 {
		t.Fatalf("artifacts = %d, want 1 default", len(cfg.Artifacts))
	}
	if a := cfg.Artifacts[0]; a.Suffix != "" || a.Template != "model" || a.Output != "./gen" {
		t.Errorf("default artifact = %+v, want suffix-less model into ./gen", a)
	}
}

func TestLoadGenConfigFull(t *testing.T) {
	const content = `
schema: appdb
templates: ./tpl
extension: .java
tables:
  include: [users, orders]
  exclude: [schema_migrations]
types:
  uuid: UUID
artifacts:
  - suffix: ""
    template: entity
    output: ./src/entity
  - suffix: Dao
    template: dao
    output: ./src/dao
`
	cfg, err := LoadGenConfig(writeConfig(t, content))
	if err != nil {
		t.Fatalf("LoadGenConfig error: %v", err)
	}

	if cfg.Schema != "appdb" {
		t.Errorf("Schema = %q, want appdb", cfg.Schema)
	}
	if cfg.Extension != ".java" {
		t.Errorf("Extension = %q, want .java", cfg.Extension)
	}
	if len(cfg.Artifacts) != 2 {
		t.Fatalf("artifacts = %d, want 2", len(cfg.Artifacts))
	}
}

func TestLoadGenConfigValidation(t *testing.T) {
	cases := []struct {
		name, content, wantErr string
	}{
		{
			name:    "extension without dot",
			content: "extension: go\n",
			wantErr: "must start with a dot",
		},
		{
			name: "artifact without template",
			content: `artifacts:
  - suffix: Dao
    output: ./gen
`,
			wantErr: "has no template",
		},
		{
			name: "duplicate suffix",
			content: `artifacts:
  - suffix: Dao
    template: dao
  - suffix: Dao
    template: dao2
`,
			wantErr: "duplicate artifact suffix",
		},
	}
	for _, tc := range cases {
		_, err := LoadGenConfig(writeConfig(t, tc.content))
		if err == nil {
			t.Errorf("%s: expected error", tc.name)
			continue
		}
		if !strings.Contains(err.Error(), tc.wantErr) {
			t.Errorf("%s: error = %v, want substring %q", tc.name, err, tc.wantErr)
		}
	}
}

func TestLoadGenConfigMissingFile(t *testing.T) {
	if _, err := LoadGenConfig(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func twoArtifactConfig() *GenConfig {
	cfg := &GenConfig{
		Artifacts: []ArtifactYAML{
			{Suffix: "", Template: "entity", Output: "./src/entity"},
			{Suffix: "Dao", Template: "dao", Output: "./src/dao"},
		},
	}
	cfg.applyDefaults()
	return cfg
}

func TestClassNamesFunc(t *testing.T) {
	names := twoArtifactConfig().ClassNamesFunc()("user_account")

	want := []string{"UserAccount", "UserAccountDao"}
	if !reflect.DeepEqual(names, want) {
		t.Errorf("ClassNames = %v, want %v", names, want)
	}
}

func TestIncludeFunc(t *testing.T) {
	cfg := &GenConfig{
		Tables: TableFilter{
			Include: []string{"users", "orders"},
			Exclude: []string{"orders"},
		},
	}
	include := cfg.IncludeFunc()

	if !include("users") {
		t.Error("users excluded, want included")
	}
	if include("orders") {
		t.Error("orders included, want exclude to win")
	}
	if include("audit_log") {
		t.Error("audit_log included, want filtered by include list")
	}
}

func TestIncludeFuncEmptyListsAcceptAll(t *testing.T) {
	include := (&GenConfig{}).IncludeFunc()
	if !include("anything") {
		t.Error("empty filter rejected a table, want accept-all")
	}
}

func TestTemplateAndOutputBySuffix(t *testing.T) {
	cfg := twoArtifactConfig()
	templateFor := cfg.TemplateNameFunc()
	outputFor := cfg.OutputDirFunc()

	if got := templateFor("UserDao"); got != "dao" {
		t.Errorf("template(UserDao) = %q, want dao (longest suffix wins)", got)
	}
	if got := templateFor("User"); got != "entity" {
		t.Errorf("template(User) = %q, want entity", got)
	}
	if got := outputFor("UserDao"); got != "./src/dao" {
		t.Errorf("output(UserDao) = %q, want ./src/dao", got)
	}
	if got := outputFor("User"); got != "./src/entity" {
		t.Errorf("output(User) = %q, want ./src/entity", got)
	}
}

func TestTypeMapperForAppliesOverrides(t *testing.T) {
	cfg := &GenConfig{Types: map[string]string{"uuid": "uuid.UUID"}}
	mapper := cfg.TypeMapperFor("postgres")

	if got := mapper("uuid"); got != "uuid.UUID" {
		t.Errorf("uuid = %q, want override uuid.UUID", got)
	}
	if got := mapper("int4"); got != "int32" {
		t.Errorf("int4 = %q, want int32 from driver defaults", got)
	}
}

func TestPropertyNameFunc(t *testing.T) {
	prop := (&GenConfig{}).PropertyNameFunc()
	if got := prop("user_id"); got != "userId" {
		t.Errorf("user_id = %q, want userId", got)
	}
}
