package content

import "fmt"

// Cache tag builders. The vocabulary is coordinated with the revalidation
// endpoint's tag mapping: a list page carries its collection tag plus a
// page-scoped tag, a single item carries the collection tag plus an
// id-scoped tag.

func listTags(collection string, page int) []string {
	return []string{collection, fmt.Sprintf("%s-page-%d", collection, page)}
}

func itemTags(collection, singular string, id int) []string {
	return []string{collection, fmt.Sprintf("%s-%d", singular, id)}
}

func slugTags(collection string) []string {
	return []string{collection}
}

// cptCollection derives the collection tag for a custom content type.
func cptCollection(typeName string) string {
	return "cpt-" + typeName
}
