package graphstore

// Title comparisons run on toLower(trim(...)) so they line up with the
// Go-side normalized key; $key is always pre-normalized by the caller.
const (
	FindMovieNodesQuery = `
		MATCH (m:Movie)
		WHERE toLower(trim(m.title)) = $key
		RETURN elementId(m) AS id, m.title AS title
	`

	ListMovieNodesQuery = `
		MATCH (m:Movie)
		RETURN elementId(m) AS id, m.title AS title
	`

	UsersWhoRatedQuery = `
		MATCH (u:User)-[r:RATED]->(m:Movie)
		WHERE toLower(trim(m.title)) = $key
		RETURN elementId(u) AS id, u.name AS name, r.rating AS rating, r.summary AS summary
		ORDER BY name
	`

	MovieNodeExistsQuery = `
		MATCH (m:Movie)
		WHERE toLower(trim(m.title)) = $key
		RETURN count(m) AS n
	`

	FindUserQuery = `
		MATCH (u:User {name: $name})
		RETURN elementId(u) AS id, u.name AS name
		LIMIT 1
	`

	MoviesRatedByQuery = `
		MATCH (u:User)-[r:RATED]->(m:Movie)
		WHERE elementId(u) = $id
		RETURN m.title AS title, r.rating AS rating
		ORDER BY title
	`

	PingQuery = `RETURN 1`
)
