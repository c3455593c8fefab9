package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeriveIsLead(t *testing.T) {
	lead := func(s string) *string { return &s }

	assert.False(t, DeriveIsLead(nil))
	assert.True(t, DeriveIsLead(lead("Group A")))
	assert.True(t, DeriveIsLead(lead("group a")))
	assert.True(t, DeriveIsLead(lead("  GROUP A  ")))
	assert.False(t, DeriveIsLead(lead("Group B")))
	assert.False(t, DeriveIsLead(lead("")))
}

func TestWorkflowStatusDerivation(t *testing.T) {
	var absent *DepartmentAllocationState
	assert.Equal(t, WorkflowNotStarted, absent.Status(false))
	assert.Equal(t, WorkflowInProgress, absent.Status(true))

	submitted := &DepartmentAllocationState{Submitted: true}
	assert.Equal(t, WorkflowSubmitted, submitted.Status(true))

	vetted := &DepartmentAllocationState{Submitted: true, Vetted: true}
	assert.Equal(t, WorkflowVetted, vetted.Status(true))
}

func TestIsAdministrativeDepartments(t *testing.T) {
	assert.True(t, Department{Name: "Registry"}.IsAdministrative())
	assert.True(t, Department{Name: "Academic Planning"}.IsAdministrative())
	assert.False(t, Department{Name: "Computer Science"}.IsAdministrative())
}
