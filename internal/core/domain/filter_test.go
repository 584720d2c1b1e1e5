package domain_test

import (
	"testing"
	"time"

	"taskboard/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func day(y int, m time.Month, d int) *time.Time {
	value := time.Date(y, m, d, 9, 0, 0, 0, time.UTC)
	return &value
}

func text(s string) *string {
	return &s
}

func sampleTasks() []domain.Task {
	base := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)
	return []domain.Task{
		{ID: "a", Title: "write thesis chapter", Category: domain.CategoryThesis, Priority: domain.PriorityLow, Status: domain.TaskStatusInProgress, Deadline: day(2024, 6, 20), CreatedAt: base},
		{ID: "b", Title: "Budget review", Category: domain.CategoryWork, Priority: domain.PriorityHigh, Status: domain.TaskStatusNotStarted, Description: text("Quarterly THESIS funding"), CreatedAt: base.Add(time.Hour)},
		{ID: "c", Title: "Calculus homework", Category: domain.CategoryAcademic, Priority: domain.PriorityMedium, Status: domain.TaskStatusDone, Deadline: day(2024, 6, 12), CreatedAt: base.Add(2 * time.Hour)},
		{ID: "d", Title: "annual meeting", Category: domain.CategoryOrganization, Priority: domain.PriorityHigh, Status: domain.TaskStatusNotStarted, CreatedAt: base.Add(3 * time.Hour)},
	}
}

func ids(tasks []domain.Task) []string {
	out := make([]string, 0, len(tasks))
	for _, task := range tasks {
		out = append(out, task.ID)
	}
	return out
}

func TestApplyView_DefaultSortsNewestFirst(t *testing.T) {
	got := domain.ApplyView(sampleTasks(), domain.ViewOptions{})
	require.Equal(t, []string{"d", "c", "b", "a"}, ids(got))
}

func TestApplyView_SearchMatchesTitleOrDescriptionCaseInsensitive(t *testing.T) {
	got := domain.ApplyView(sampleTasks(), domain.ViewOptions{Search: "  thesis "})
	require.ElementsMatch(t, []string{"a", "b"}, ids(got))
}

func TestApplyView_BlankSearchIsNoop(t *testing.T) {
	got := domain.ApplyView(sampleTasks(), domain.ViewOptions{Search: "   "})
	require.Len(t, got, 4)
}

func TestApplyView_FiltersAreIndependent(t *testing.T) {
	tasks := sampleTasks()

	got := domain.ApplyView(tasks, domain.ViewOptions{Category: string(domain.CategoryWork)})
	require.Equal(t, []string{"b"}, ids(got))

	got = domain.ApplyView(tasks, domain.ViewOptions{Filters: domain.Filters{Status: string(domain.TaskStatusNotStarted)}})
	require.ElementsMatch(t, []string{"b", "d"}, ids(got))

	got = domain.ApplyView(tasks, domain.ViewOptions{Filters: domain.Filters{Priority: string(domain.PriorityHigh), Status: domain.FilterAll}})
	require.ElementsMatch(t, []string{"b", "d"}, ids(got))

	// Primary and secondary category selections disagreeing leaves nothing.
	got = domain.ApplyView(tasks, domain.ViewOptions{
		Category: string(domain.CategoryWork),
		Filters:  domain.Filters{Category: string(domain.CategoryThesis)},
	})
	require.Empty(t, got)
}

func TestApplyView_FilteringIsIdempotent(t *testing.T) {
	opts := domain.ViewOptions{Search: "e", Filters: domain.Filters{Status: string(domain.TaskStatusNotStarted), SortBy: domain.SortTitle}}

	once := domain.ApplyView(sampleTasks(), opts)
	twice := domain.ApplyView(once, opts)
	require.Equal(t, once, twice)
}

func TestApplyView_DoesNotMutateInput(t *testing.T) {
	tasks := sampleTasks()
	_ = domain.ApplyView(tasks, domain.ViewOptions{Filters: domain.Filters{SortBy: domain.SortTitle}})
	require.Equal(t, []string{"a", "b", "c", "d"}, ids(tasks))
}

func TestApplyView_SortIsPermutationAndOrdered(t *testing.T) {
	tasks := sampleTasks()
	for _, by := range []domain.SortBy{domain.SortNewest, domain.SortDeadline, domain.SortPriority, domain.SortTitle} {
		t.Run(string(by), func(t *testing.T) {
			got := domain.ApplyView(tasks, domain.ViewOptions{Filters: domain.Filters{SortBy: by}})
			require.ElementsMatch(t, ids(tasks), ids(got))

			for i := 1; i < len(got); i++ {
				prev, cur := got[i-1], got[i]
				switch by {
				case domain.SortNewest:
					assert.False(t, prev.CreatedAt.Before(cur.CreatedAt))
				case domain.SortPriority:
					assert.LessOrEqual(t, prev.Priority.Rank(), cur.Priority.Rank())
				case domain.SortDeadline:
					if prev.Deadline == nil {
						assert.Nil(t, cur.Deadline)
					} else if cur.Deadline != nil {
						assert.False(t, prev.Deadline.After(*cur.Deadline))
					}
				}
			}
		})
	}
}

func TestApplyView_DeadlineSortPutsMissingDeadlinesLast(t *testing.T) {
	got := domain.ApplyView(sampleTasks(), domain.ViewOptions{Filters: domain.Filters{SortBy: domain.SortDeadline}})
	require.Equal(t, "c", got[0].ID)
	require.Equal(t, "a", got[1].ID)
	require.Nil(t, got[2].Deadline)
	require.Nil(t, got[3].Deadline)
}

func TestApplyView_PrioritySort(t *testing.T) {
	tasks := []domain.Task{
		{ID: "low", Priority: domain.PriorityLow},
		{ID: "high", Priority: domain.PriorityHigh},
		{ID: "medium", Priority: domain.PriorityMedium},
	}
	got := domain.ApplyView(tasks, domain.ViewOptions{Filters: domain.Filters{SortBy: domain.SortPriority}})
	require.Equal(t, []string{"high", "medium", "low"}, ids(got))
}

func TestApplyView_TitleSortIsLocaleAware(t *testing.T) {
	tasks := []domain.Task{
		{ID: "z", Title: "zebra"},
		{ID: "e", Title: "Éclair"},
		{ID: "a", Title: "apple"},
		{ID: "b", Title: "Banana"},
	}
	got := domain.ApplyView(tasks, domain.ViewOptions{Filters: domain.Filters{SortBy: domain.SortTitle}, Locale: language.English})
	require.Equal(t, []string{"a", "b", "e", "z"}, ids(got))
}

func TestSortBy_Valid(t *testing.T) {
	assert.True(t, domain.SortBy("").Valid())
	assert.True(t, domain.SortTitle.Valid())
	assert.False(t, domain.SortBy("oldest").Valid())
}
