package content

// GraphQL documents sent to the backend query API. The shared entity
// fragment keeps the field set identical across posts, pages, and
// generic content nodes so one normalizer covers all three.

const entityFields = `
	databaseId
	slug
	date
	modified
	status
	title
	content
	excerpt
	commentStatus
	pingStatus
	author { node { databaseId } }
	featuredImage { node { databaseId } }
	seo {
		title
		metaDesc
		canonical
		opengraphTitle
		opengraphDescription
		opengraphImage { sourceUrl altText mediaDetails { width height } }
		twitterTitle
		twitterDescription
		twitterImage { sourceUrl altText mediaDetails { width height } }
	}
`

const postFields = entityFields + `
	categories(first: 100) { nodes { databaseId } }
	tags(first: 100) { nodes { databaseId } }
`

const postsPageQuery = `
query PostsPage($first: Int!, $after: String) {
	posts(first: $first, after: $after, where: {status: PUBLISH}) {
		pageInfo { hasNextPage endCursor }
		nodes {` + postFields + `}
	}
}`

const postsCountQuery = `
query PostsCount($cap: Int!) {
	posts(first: $cap, where: {status: PUBLISH}) {
		nodes { databaseId }
	}
}`

const postBySlugQuery = `
query PostBySlug($slug: ID!) {
	post(id: $slug, idType: SLUG) {` + postFields + `}
}`

const postByIDQuery = `
query PostByID($id: ID!) {
	post(id: $id, idType: DATABASE_ID) {` + postFields + `}
}`

const postSlugsQuery = `
query PostSlugs($first: Int!, $after: String) {
	posts(first: $first, after: $after, where: {status: PUBLISH}) {
		pageInfo { hasNextPage endCursor }
		nodes { slug }
	}
}`

const pagesPageQuery = `
query PagesPage($first: Int!, $after: String) {
	pages(first: $first, after: $after, where: {status: PUBLISH}) {
		pageInfo { hasNextPage endCursor }
		nodes {` + entityFields + `}
	}
}`

const pagesCountQuery = `
query PagesCount($cap: Int!) {
	pages(first: $cap, where: {status: PUBLISH}) {
		nodes { databaseId }
	}
}`

const pageBySlugQuery = `
query PageBySlug($slug: ID!) {
	page(id: $slug, idType: URI) {` + entityFields + `}
}`

const pageSlugsQuery = `
query PageSlugs($first: Int!, $after: String) {
	pages(first: $first, after: $after, where: {status: PUBLISH}) {
		pageInfo { hasNextPage endCursor }
		nodes { slug }
	}
}`

const nodesPageQuery = `
query NodesPage($type: [ContentTypeEnum], $first: Int!, $after: String) {
	contentNodes(first: $first, after: $after, where: {contentTypes: $type, status: PUBLISH}) {
		pageInfo { hasNextPage endCursor }
		nodes { ... on NodeWithContentEditor {` + entityFields + `} }
	}
}`

const nodesCountQuery = `
query NodesCount($type: [ContentTypeEnum], $cap: Int!) {
	contentNodes(first: $cap, where: {contentTypes: $type, status: PUBLISH}) {
		nodes { ... on DatabaseIdentifier { databaseId } }
	}
}`

const nodeBySlugQuery = `
query NodeBySlug($type: [ContentTypeEnum], $slug: String!) {
	contentNodes(first: 1, where: {contentTypes: $type, name: $slug}) {
		nodes { ... on NodeWithContentEditor {` + entityFields + `} }
	}
}`

const nodeSlugsQuery = `
query NodeSlugs($type: [ContentTypeEnum], $first: Int!, $after: String) {
	contentNodes(first: $first, after: $after, where: {contentTypes: $type, status: PUBLISH}) {
		pageInfo { hasNextPage endCursor }
		nodes { slug }
	}
}`

const mediaByIDQuery = `
query MediaByID($id: ID!) {
	mediaItem(id: $id, idType: DATABASE_ID) {
		databaseId
		slug
		sourceUrl
		altText
		mimeType
		mediaDetails { width height }
	}
}`

const categoriesQuery = `
query Categories($first: Int!) {
	categories(first: $first) {
		nodes { databaseId name slug count }
	}
}`

const tagsQuery = `
query Tags($first: Int!) {
	tags(first: $first) {
		nodes { databaseId name slug count }
	}
}`

const authorByIDQuery = `
query AuthorByID($id: ID!) {
	user(id: $id, idType: DATABASE_ID) {
		databaseId
		name
		slug
		description
		avatar { url }
	}
}`
