package fieldproperties

import (
	"testing"

	"github.com/stretchr/testify/require"
	"recruit-flow-backend/models"
	fieldapimodels "recruit-flow-backend/models/api/field"
	dbmodels "recruit-flow-backend/models/db"
)

type fakeStageStore struct {
	stages map[string]*dbmodels.Stage
	saved  dbmodels.FieldPropertiesConfig
}

func (f *fakeStageStore) Create(rec dbmodels.Stage) (string, error) { return rec.ID, nil }
func (f *fakeStageStore) Update(spaceID, workflowID, id string, updMap map[string]interface{}) error {
	return nil
}
func (f *fakeStageStore) GetByID(spaceID, id string) (*dbmodels.Stage, error) {
	return f.stages[id], nil
}
func (f *fakeStageStore) List(spaceID, workflowID string) ([]dbmodels.Stage, error) { return nil, nil }
func (f *fakeStageStore) Delete(spaceID, workflowID, id string) error { return nil }
func (f *fakeStageStore) SetFieldProperties(spaceID, id string, config dbmodels.FieldPropertiesConfig) error {
	f.saved = config
	return nil
}
func (f *fakeStageStore) ListWithFieldConfigured(spaceID, fieldID string) ([]dbmodels.Stage, error) {
	return nil, nil
}

type fakeFieldStore struct {
	fields []dbmodels.CustomField
}

func (f *fakeFieldStore) Create(rec dbmodels.CustomField) (string, error) { return rec.ID, nil }
func (f *fakeFieldStore) Update(spaceID, id string, updMap map[string]interface{}) error {
	return nil
}
func (f *fakeFieldStore) GetByID(spaceID, id string) (*dbmodels.CustomField, error) {
	for k := range f.fields {
		if f.fields[k].ID == id {
			return &f.fields[k], nil
		}
	}
	return nil, nil
}
func (f *fakeFieldStore) GetByKey(spaceID string, entity models.EntityRef, fieldKey string) (*dbmodels.CustomField, error) {
	return nil, nil
}
func (f *fakeFieldStore) List(spaceID string, entity models.EntityRef) ([]dbmodels.CustomField, error) {
	return f.fields, nil
}
func (f *fakeFieldStore) Delete(spaceID, id string) error { return nil }

func makeField(id, key string) dbmodels.CustomField {
	return dbmodels.CustomField{
		BaseSpaceModel: dbmodels.BaseSpaceModel{BaseModel: dbmodels.BaseModel{ID: id}},
		FieldKey:       key,
		FieldName:      key,
	}
}

func newFixture(config dbmodels.FieldPropertiesConfig, fields ...dbmodels.CustomField) (*fakeStageStore, Provider) {
	stage := &dbmodels.Stage{
		BaseSpaceModel:        dbmodels.BaseSpaceModel{BaseModel: dbmodels.BaseModel{ID: "st1"}},
		WorkflowID:            "wf1",
		FieldPropertiesConfig: config,
	}
	stageStore := &fakeStageStore{stages: map[string]*dbmodels.Stage{"st1": stage}}
	return stageStore, NewResolver(stageStore, &fakeFieldStore{fields: fields}, DefaultProperties)
}

func TestResolveProperties(t *testing.T) {
	configured := dbmodels.FieldProperties{
		VisibleCompany:   true,
		VisibleCandidate: true,
		IsRequired:       true,
		IsEditable:       true,
	}
	_, resolver := newFixture(dbmodels.FieldPropertiesConfig{"f1": configured})

	t.Run("configured pair resolves to the stored entry", func(t *testing.T) {
		view, err := resolver.ResolveProperties("sp1", "st1", "f1")
		require.NoError(t, err)
		require.True(t, view.Configured)
		require.Equal(t, configured, view.Properties)
	})

	t.Run("resolution is total: unconfigured pair gets the defaults", func(t *testing.T) {
		view, err := resolver.ResolveProperties("sp1", "st1", "f2")
		require.NoError(t, err)
		require.False(t, view.Configured)
		require.Equal(t, DefaultProperties, view.Properties)
	})

	t.Run("unknown stage is an error", func(t *testing.T) {
		_, err := resolver.ResolveProperties("sp1", "missing", "f1")
		require.Error(t, err)
	})
}

func TestResolveVisibleFields(t *testing.T) {
	config := dbmodels.FieldPropertiesConfig{
		"f1": {VisibleCompany: true, VisibleCandidate: true},
		"f2": {VisibleCompany: true, VisibleCandidate: false},
		"f3": {VisibleCompany: false, VisibleCandidate: false},
	}
	_, resolver := newFixture(config,
		makeField("f1", "salary"), makeField("f2", "notes"), makeField("f3", "score"), makeField("f4", "extra"))

	t.Run("company audience", func(t *testing.T) {
		visible, err := resolver.ResolveVisibleFields("sp1", "st1", models.AudienceCompany)
		require.NoError(t, err)
		// f4 has no entry and inherits the company-visible default
		require.Equal(t, []string{"f1", "f2", "f4"}, visible)
	})

	t.Run("candidate audience", func(t *testing.T) {
		visible, err := resolver.ResolveVisibleFields("sp1", "st1", models.AudienceCandidate)
		require.NoError(t, err)
		require.Equal(t, []string{"f1"}, visible)
	})
}

func TestSetProperties(t *testing.T) {
	stageStore, resolver := newFixture(nil, makeField("f1", "salary"))

	props := dbmodels.FieldProperties{VisibleCompany: true, IsRequired: true}
	err := resolver.SetProperties("sp1", "st1", fieldapimodels.PropertiesData{
		FieldID:    "f1",
		Properties: props,
	})
	require.NoError(t, err)
	require.Equal(t, props, stageStore.saved["f1"])

	t.Run("unknown field is refused", func(t *testing.T) {
		err := resolver.SetProperties("sp1", "st1", fieldapimodels.PropertiesData{FieldID: "missing"})
		require.Error(t, err)
	})
}

func TestMissingRequiredFields(t *testing.T) {
	config := dbmodels.FieldPropertiesConfig{
		"f1": {VisibleCompany: true, IsRequired: true},
		"f2": {VisibleCompany: true, IsRequired: true},
		"f3": {VisibleCompany: true, IsRequired: false},
	}
	_, resolver := newFixture(config,
		makeField("f1", "salary"), makeField("f2", "skills"), makeField("f3", "notes"))
	stage := dbmodels.Stage{
		BaseSpaceModel:        dbmodels.BaseSpaceModel{BaseModel: dbmodels.BaseModel{ID: "st1"}},
		WorkflowID:            "wf1",
		FieldPropertiesConfig: config,
	}

	t.Run("empty and absent values are reported", func(t *testing.T) {
		missing, err := resolver.MissingRequiredFields("sp1", stage, map[string]interface{}{
			"salary": float64(100000),
			"skills": []interface{}{},
		})
		require.NoError(t, err)
		require.Equal(t, []string{"skills"}, missing)
	})

	t.Run("all present", func(t *testing.T) {
		missing, err := resolver.MissingRequiredFields("sp1", stage, map[string]interface{}{
			"salary": float64(100000),
			"skills": []interface{}{"go"},
		})
		require.NoError(t, err)
		require.Empty(t, missing)
	})
}
