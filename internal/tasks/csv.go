package tasks

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"

	"intertask/internal/utils"
)

var csvHeader = []string{"ID", "Task", "Assigned", "Priority", "Status", "Created", "Subtasks"}

// csvRecords flattens tasks into export rows. The Subtasks column keeps
// the serialized-list shape of the legacy export ("[]" when empty).
func csvRecords(list []Task) [][]string {
	records := make([][]string, 0, len(list)+1)
	records = append(records, csvHeader)

	for _, t := range list {
		subs := t.SubTasks
		if subs == nil {
			subs = []string{}
		}
		encoded, err := json.Marshal(subs)
		if err != nil {
			encoded = []byte("[]")
		}

		records = append(records, []string{
			strconv.FormatInt(t.ID, 10),
			t.Description,
			strconv.FormatInt(t.AssignedTo, 10),
			t.Priority,
			t.Status,
			utils.FormatTimestamp(t.CreatedAt),
			string(encoded),
		})
	}

	return records
}

func writeTasksCSV(w io.Writer, list []Task) error {
	return csv.NewWriter(w).WriteAll(csvRecords(list))
}
