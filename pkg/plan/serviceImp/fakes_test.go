package serviceImp

import (
	"context"
	"sync"

	"lessonplan/entities"
	"lessonplan/pkg/plan/types"
	"lessonplan/pkg/refdata"
)

type fakeRefs struct {
	descs map[string][]entities.Descriptor
	names map[string]string
}

func newFakeRefs() *fakeRefs {
	return &fakeRefs{
		descs: map[string][]entities.Descriptor{
			"S1": {{ID: "D1", Description: "desc one"}},
			"S2": {{ID: "D2", Description: "desc two"}, {ID: "D3", Description: "desc three"}},
		},
		names: map[string]string{
			"S1": "Skill one",
			"S2": "Skill two",
			"S3": "Skill without descriptors",
		},
	}
}

func (f *fakeRefs) DescriptorsForSkill(code string) []entities.Descriptor {
	return append([]entities.Descriptor{}, f.descs[code]...)
}

func (f *fakeRefs) DescriptionForSkill(code string) string {
	if d, ok := f.names[code]; ok {
		return d
	}
	return refdata.DescriptionNotFound
}

func (f *fakeRefs) Grades() []string               { return nil }
func (f *fakeRefs) SkillsForGrade(string) []string { return nil }
func (f *fakeRefs) Stats() refdata.Stats           { return refdata.Stats{Skills: len(f.names)} }

type fakeClient struct {
	mu      sync.Mutex
	raw     string
	err     error
	prompts []string
	schemas []*types.Schema
}

func (f *fakeClient) GenerateJSON(_ context.Context, prompt string, schema *types.Schema) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.prompts = append(f.prompts, prompt)
	f.schemas = append(f.schemas, schema)
	return f.raw, f.err
}

func (f *fakeClient) Model() string { return "fake-model" }
