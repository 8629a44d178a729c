package api

// Detail strings surfaced to callers. The substrings "already signed up"
// and "not registered" are part of the public contract.
const (
	detailActivityNotFound = "Activity not found"
	detailAlreadySignedUp  = "Student is already signed up for this activity"
	detailNotRegistered    = "Student is not registered for this activity"
	detailMissingEmail     = "Missing required email query parameter"
)
