package apierrors

const (
	MsgFailListTask       = "errorListTask"
	MsgInvalidTaskID      = "invalidTaskID"
	MsgInvalidTaskPayload = "invalidTaskPayload"
	MsgInvalidTaskQuery   = "invalidTaskQuery"
	MsgTaskNotFound       = "taskNotFound"
	MsgFailCreateTask     = "failCreateTask"
	MsgFailUpdateTask     = "failUpdateTask"
	MsgFailDeleteTask     = "failDeleteTask"
	MsgFailRefreshTasks   = "failRefreshTasks"
	MsgInvalidDate        = "invalidDate"

	MsgUnauthenticated    = "unauthenticated"
	MsgInvalidAuthPayload = "invalidAuthPayload"
	MsgInvalidCredentials = "invalidCredentials"
	MsgEmailNotConfirmed  = "emailNotConfirmed"
	MsgFailSignUp         = "failSignUp"
	MsgFailSignIn         = "failSignIn"
	MsgFailSignOut        = "failSignOut"

	MsgFailExport = "failExport"

	MsgNotificationsUnsupported = "notificationsUnsupported"
	MsgNotificationNotFound     = "notificationNotFound"
	MsgInvalidPermissionPayload = "invalidPermissionPayload"
)
