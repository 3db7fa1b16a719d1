package registration

import (
	"errors"
	"fmt"
	"slices"
)

// ResolveSteps returns the applicable tabs in wizard order:
// personal, business (organizations), loan, credit and payment (loan requests), documents, declarations.
func ResolveSteps(personType PersonType, wantsLoan bool) []TabID {
	tabs := make([]TabID, 0, len(AllTabs))
	tabs = append(tabs, TabPersonal)
	if personType == Organization {
		tabs = append(tabs, TabBusiness)
	}
	if wantsLoan {
		tabs = append(tabs, TabLoan, TabCredit, TabPayment)
	}
	return append(tabs, TabDocuments, TabDeclarations)
}

// Advance validates the tab at currentStep and moves to the next one. On the last tab the step is kept.
// When validation fails the step is unchanged and the error wraps ErrValidationFailed.
func Advance(currentStep int, tabs []TabID, validate func(TabID) error) (int, TabID, error) {
	step := clampStep(currentStep, tabs)
	tab := tabs[step-1]

	if err := validate(tab); err != nil {
		if !errors.Is(err, ErrValidationFailed) {
			err = fmt.Errorf("%w: %w", ErrValidationFailed, err)
		}
		return step, tab, err
	}
	if step < len(tabs) {
		step++
	}
	return step, tabs[step-1], nil
}

// Retreat moves to the previous tab without validation. Step 1 stays on step 1.
func Retreat(currentStep int, tabs []TabID) (int, TabID) {
	step := clampStep(currentStep, tabs)
	if step > 1 {
		step--
	}
	return step, tabs[step-1]
}

// Reconcile places the wizard on a tab of a recomputed sequence. The active tab is kept when it still
// applies; otherwise the wizard goes back to the closest tab before it that does.
func Reconcile(activeTab TabID, tabs []TabID) (int, TabID) {
	if i := slices.Index(tabs, activeTab); i >= 0 {
		return i + 1, activeTab
	}

	order := slices.Index(AllTabs, activeTab)
	step := 1
	for i, tab := range tabs {
		if slices.Index(AllTabs, tab) < order {
			step = i + 1
		}
	}
	return step, tabs[step-1]
}

func clampStep(step int, tabs []TabID) int {
	return max(1, min(step, len(tabs)))
}

type TabState struct {
	Id      TabID
	Step    int
	Enabled bool
	Active  bool
}

// Steps describes the wizard position for rendering.
type Steps struct {
	Tabs        []TabState
	CurrentStep int
	MaxStep     int
	ActiveTab   TabID
}

// TabStates enables the tabs up to the current step; later tabs are reached only through Advance.
// Enabled means reachable, not validated: tabs inserted before the active one by Reconcile are enabled
// without having been visited, and Submit validates every tab again.
func TabStates(tabs []TabID, currentStep int) Steps {
	step := clampStep(currentStep, tabs)
	states := make([]TabState, 0, len(tabs))
	for i, tab := range tabs {
		states = append(states, TabState{
			Id:      tab,
			Step:    i + 1,
			Enabled: i+1 <= step,
			Active:  i+1 == step,
		})
	}
	return Steps{
		Tabs:        states,
		CurrentStep: step,
		MaxStep:     len(tabs),
		ActiveTab:   tabs[step-1],
	}
}
