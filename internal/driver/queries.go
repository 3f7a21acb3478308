package driver

const (
	// GetGroupFactEdgesQuery reads the fact text of every live RELATES_TO
	// edge in a group, oldest first.
	GetGroupFactEdgesQuery = `
		MATCH (:Entity {group_id: $group_id})-[e:RELATES_TO]->(:Entity)
		WHERE e.fact IS NOT NULL AND (e.invalid_at IS NULL OR e.invalid_at = "")
		RETURN e.fact AS statement
		ORDER BY e.created_at, e.uuid
	`

	GetFactNodesQuery = `
		MATCH (f:Fact)
		WHERE f.statement IS NOT NULL AND ($group_id = "" OR f.group_id = $group_id)
		RETURN f.statement AS statement
		ORDER BY f.created_at, f.uuid
	`

	limitClause = `
		LIMIT $limit
	`
)
