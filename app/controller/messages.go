package controller

const (
	msgLoginSuccess           = "Login successful"
	msgInvalidCredentials     = "Invalid email or password"
	msgTokenRefreshed         = "Token refreshed successfully"
	msgInvalidRefreshToken    = "Invalid or expired refresh token"
	msgPasswordResetSent      = "If the email exists, a reset link has been sent"
	msgPasswordResetSuccess   = "Password reset successful"
	msgInvalidResetToken      = "Invalid or expired reset token"
	msgUserFound              = "User retrieved successfully"
	msgUserUpdated            = "User updated successfully"
	msgUserNotFound           = "User not found"
	msgAvatarUpdated          = "Profile image updated successfully"
	msgInvalidRequestBody     = "Invalid request body"
	msgUnauthorized           = "Unauthorized"
	msgInternalError          = "Internal server error"
	msgProjectCreated         = "Project created successfully"
	msgProjectsFound          = "Projects retrieved successfully"
	msgProjectFound           = "Project retrieved successfully"
	msgProjectUpdated         = "Project updated successfully"
	msgProjectDeleted         = "Project deleted successfully"
	msgProjectNotFound        = "Project not found"
	msgUserQueryCreated       = "Your query has been submitted successfully"
	msgUserQueriesFound       = "User queries retrieved successfully"
	msgUserQueryFound         = "User query retrieved successfully"
	msgUserQueryDeleted       = "User query deleted successfully"
	msgUserQueryNotFound      = "User query not found"
	msgFileUploaded           = "File uploaded successfully"
	msgFileDeleted            = "File deleted successfully"
	msgFileRequired           = "file is required"
	msgHealthy                = "Service is healthy"
	msgUnhealthy              = "Service is unhealthy"
	msgHealthNotAvailable     = "No health check has run yet"
	msgComponentHealthy       = "Component is healthy"
	msgComponentUnhealthy     = "Component is unhealthy"
	msgHealthReportRetrieved  = "Last health report retrieved successfully"
	msgSkillCreated           = "Skill created successfully"
	msgSkillListed            = "Skills retrieved successfully"
	msgSkillFound             = "Skill retrieved successfully"
	msgSkillUpdated           = "Skill updated successfully"
	msgSkillDeleted           = "Skill deleted successfully"
	msgSkillNotFound          = "Skill not found"
	msgTimelineCreated        = "Timeline item created successfully"
	msgTimelineListed         = "Timeline retrieved successfully"
	msgTimelineFound          = "Timeline item retrieved successfully"
	msgTimelineUpdated        = "Timeline item updated successfully"
	msgTimelineDeleted        = "Timeline item deleted successfully"
	msgTimelineNotFound       = "Timeline item not found"
	msgEducationCreated       = "Education created successfully"
	msgEducationListed        = "Education records retrieved successfully"
	msgEducationFound         = "Education retrieved successfully"
	msgEducationUpdated       = "Education updated successfully"
	msgEducationDeleted       = "Education deleted successfully"
	msgEducationNotFound      = "Education not found"
	msgCertificateCreated     = "Certificate created successfully"
	msgCertificateListed      = "Certificates retrieved successfully"
	msgCertificateFound       = "Certificate retrieved successfully"
	msgCertificateUpdated     = "Certificate updated successfully"
	msgCertificateDeleted     = "Certificate deleted successfully"
	msgCertificateNotFound    = "Certificate not found"
	msgAchievementCreated     = "Achievement created successfully"
	msgAchievementListed      = "Achievements retrieved successfully"
	msgAchievementFound       = "Achievement retrieved successfully"
	msgAchievementUpdated     = "Achievement updated successfully"
	msgAchievementDeleted     = "Achievement deleted successfully"
	msgAchievementNotFound    = "Achievement not found"
	msgWorkExperienceCreated  = "Work experience created successfully"
	msgWorkExperienceListed   = "Work experiences retrieved successfully"
	msgWorkExperienceFound    = "Work experience retrieved successfully"
	msgWorkExperienceUpdated  = "Work experience updated successfully"
	msgWorkExperienceDeleted  = "Work experience deleted successfully"
	msgWorkExperienceNotFound = "Work experience not found"
)
