package response

type PlatformStats struct {
	UsersCount   int64 `json:"users_count"`
	StoresCount  int64 `json:"stores_count"`
	RatingsCount int64 `json:"ratings_count"`
}
