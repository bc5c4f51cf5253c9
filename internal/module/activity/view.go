package activity

import (
	"campus-discover/internal/global/database"
	"campus-discover/internal/global/jwt"
	"campus-discover/internal/model"
)

// activityView is an activity plus the derived fields every response
// carries: engagement counts and the caller-specific isLiked flag.
type activityView struct {
	model.Activity
	CommentCount int64 `json:"commentCount"`
	LikeCount    int64 `json:"likeCount"`
	IsLiked      bool  `json:"isLiked"`
}

type countRow struct {
	ActivityID uint
	N          int64
}

// buildViews decorates activities with counts and, for an authenticated
// viewer, their like state. The like lookup is keyed strictly to the
// viewer so one caller's state can never appear in another's response.
func buildViews(activities []model.Activity, viewer *jwt.UserPayload) ([]activityView, error) {
	views := make([]activityView, len(activities))
	if len(activities) == 0 {
		return views, nil
	}

	ids := make([]uint, len(activities))
	for i, a := range activities {
		ids[i] = a.ID
		views[i] = activityView{Activity: a}
	}

	commentCounts, err := countByActivity(&model.Comment{}, ids)
	if err != nil {
		return nil, err
	}
	likeCounts, err := countByActivity(&model.Like{}, ids)
	if err != nil {
		return nil, err
	}

	liked := map[uint]bool{}
	if viewer != nil {
		var likedIDs []uint
		err := database.DB.Model(&model.Like{}).
			Where("user_id = ? AND activity_id IN ?", viewer.ID, ids).
			Pluck("activity_id", &likedIDs).Error
		if err != nil {
			return nil, err
		}
		for _, id := range likedIDs {
			liked[id] = true
		}
	}

	for i := range views {
		id := views[i].ID
		views[i].CommentCount = commentCounts[id]
		views[i].LikeCount = likeCounts[id]
		views[i].IsLiked = liked[id]
	}
	return views, nil
}

func buildView(activity model.Activity, viewer *jwt.UserPayload) (*activityView, error) {
	views, err := buildViews([]model.Activity{activity}, viewer)
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

func countByActivity(m any, ids []uint) (map[uint]int64, error) {
	var rows []countRow
	err := database.DB.Model(m).
		Select("activity_id, COUNT(*) AS n").
		Where("activity_id IN ?", ids).
		Group("activity_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	counts := make(map[uint]int64, len(rows))
	for _, row := range rows {
		counts[row.ActivityID] = row.N
	}
	return counts, nil
}
