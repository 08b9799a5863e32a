package handler

import "github.com/RMvanderGaag/find-a-buddy/internal/core/ports"

// --- Service view → Response ---

func toMeetupResponse(v ports.MeetupView) meetupResponse {
	resp := meetupResponse{
		ID:       v.ID,
		Topic:    v.Topic,
		Datetime: v.Datetime.UTC(),
		Coach:    v.Coach,
		Pupil:    v.Pupil,
		Accepted: v.Accepted,
	}
	if v.Review != nil {
		resp.Review = &reviewResponse{Text: v.Review.Text, Rating: v.Review.Rating}
	}
	return resp
}

func toMeetupResponses(views []ports.MeetupView) []meetupResponse {
	out := make([]meetupResponse, 0, len(views))
	for _, v := range views {
		out = append(out, toMeetupResponse(v))
	}
	return out
}

func toUserResponse(v *ports.UserView) userResponse {
	return userResponse{
		ID:            v.ID,
		Name:          v.Name,
		TopicsTaught:  v.TopicsTaught,
		TopicsLearned: v.TopicsLearned,
		Meetups:       v.Meetups,
	}
}
