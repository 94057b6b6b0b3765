package model

// All returns every persisted model in migration order.
func All() []any {
	return []any{
		&UserModel{},
		&RefreshTokenModel{},
		&GoalModel{},
		&ActivityModel{},
		&StreakModel{},
		&CompletionModel{},
		&PartnershipModel{},
		&NotificationModel{},
		&EmailQueueModel{},
	}
}
