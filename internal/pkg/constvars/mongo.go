package constvars

const (
	MongoCollectionSubmissions = "survey_submissions"
	MongoCollectionAccounts    = "patient_accounts"
	MongoCollectionVitals      = "patient_vitals"
	MongoCollectionCategories  = "answer_categories"
)

const (
	RedisKeyCategoryCatalog      = "catalog:categories"
	RedisKeyAssignmentLockFormat = "assignment:account:%s"
	RedisKeyReminderWorkerLeader = "reminders:leader"
)
