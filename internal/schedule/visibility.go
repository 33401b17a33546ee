package schedule

import (
	"sort"

	"taskgrid/internal/model"
)

// VisibleSubTasks selects the items of a task that should be shown on the
// given day. A recurring task active that day shows its full item set;
// otherwise only items that are still open or were closed on that very day
// appear, hiding work finished on an earlier date. The result is sorted by
// ascending ID (creation order) and never aliases task.SubTasks.
func VisibleSubTasks(task *model.MasterTask, day model.Date) []model.SubTask {
	var visible []model.SubTask
	if task.RecurrenceType.Recurring() && IsActive(task, day) {
		visible = append(visible, task.SubTasks...)
	} else {
		for _, st := range task.SubTasks {
			if !st.IsCompleted || (st.CompletionDate != nil && st.CompletionDate.Equal(day)) {
				visible = append(visible, st)
			}
		}
	}
	sort.Slice(visible, func(i, j int) bool { return visible[i].ID < visible[j].ID })
	return visible
}
