package vespa

import (
	"fmt"
	"strings"
)

// SplitDocumentID parses an engine document id of the form
// id:<namespace>:<schema>::<data_id>.
func SplitDocumentID(documentID string) (namespace, schema, dataID string, err error) {
	parseErr := fmt.Errorf(
		"failed to parse document id: %s, document ids should be of the form id:namespace:schema::data_id",
		documentID,
	)

	head, dataID, found := strings.Cut(documentID, "::")
	if !found || dataID == "" {
		return "", "", "", parseErr
	}
	parts := strings.Split(head, ":")
	if len(parts) != 3 || parts[0] != "id" || parts[1] == "" || parts[2] == "" {
		return "", "", "", parseErr
	}
	return parts[1], parts[2], dataID, nil
}
