package mysql

const insertSessionSQL = `
INSERT INTO sessions (id, user_id, expires_at)
VALUES (?, ?, ?)
`

// Expired rows read as absent; purgeSessionsSQL removes them.
const selectSessionUserSQL = `
SELECT user_id
FROM sessions
WHERE id = ? AND expires_at > ?
`

const touchSessionSQL = `
UPDATE sessions SET last_seen_at = CURRENT_TIMESTAMP WHERE id = ?
`

const deleteSessionSQL = `DELETE FROM sessions WHERE id = ?`

const purgeSessionsSQL = `DELETE FROM sessions WHERE expires_at <= ?`
