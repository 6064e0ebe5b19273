package catalog

import (
	"sort"

	"github.com/lessongate/lessongate/internal/access"
	"github.com/lessongate/lessongate/internal/model"
)

// Assemble joins raw records into the nested subject view, annotating every
// lesson with the user's access snapshot. Lessons referencing an unknown
// subject are dropped. Counts are computed from the assembled children, never
// read from a stored field.
func Assemble(subjects []model.Subject, lessons []model.Lesson, videos []model.Video, snap access.Snapshot) []Subject {
	videosByLesson := groupVideos(videos)

	lessonsBySubject := make(map[string][]Lesson, len(subjects))
	for _, lesson := range lessons {
		lv := Lesson{
			ID:           lesson.ID,
			SubjectID:    lesson.SubjectID,
			Title:        lesson.Title,
			Description:  lesson.Description,
			ThumbnailURL: lesson.ThumbnailURL,
			Videos:       videosByLesson[lesson.ID],
		}
		if lv.Videos == nil {
			lv.Videos = []Video{}
		}
		lv.VideoCount = len(lv.Videos)

		lv.HasAccess = snap.HasAccess(lesson.ID)
		lv.RequestStatus = snap.RequestStatus(lesson.ID)

		lessonsBySubject[lesson.SubjectID] = append(lessonsBySubject[lesson.SubjectID], lv)
	}

	out := make([]Subject, 0, len(subjects))
	for _, subject := range subjects {
		sv := Subject{
			ID:          subject.ID,
			Name:        subject.Name,
			Description: subject.Description,
			Icon:        subject.Icon,
			Color:       subject.Color,
			ImageURL:    subject.ImageURL,
			Lessons:     lessonsBySubject[subject.ID],
		}
		if sv.Lessons == nil {
			sv.Lessons = []Lesson{}
		}
		sv.LessonCount = len(sv.Lessons)
		out = append(out, sv)
	}

	return out
}

// groupVideos buckets videos per lesson and orders each bucket by position
// ascending. A missing position defaults to the video's fetch index within
// its lesson; positions are not unique, ties keep fetch order (stable sort).
func groupVideos(videos []model.Video) map[string][]Video {
	byLesson := make(map[string][]Video)
	fetchIndex := make(map[string]int)
	for _, video := range videos {
		position := fetchIndex[video.LessonID]
		fetchIndex[video.LessonID]++
		if video.Position != nil {
			position = *video.Position
		}

		byLesson[video.LessonID] = append(byLesson[video.LessonID], Video{
			ID:           video.ID,
			Title:        video.Title,
			Description:  video.Description,
			SourceURL:    video.SourceURL,
			ThumbnailURL: video.ThumbnailURL,
			Duration:     video.Duration,
			Position:     position,
			CreatedAt:    video.CreatedAt,
		})
	}

	for _, bucket := range byLesson {
		sort.SliceStable(bucket, func(a, b int) bool {
			return bucket[a].Position < bucket[b].Position
		})
	}

	return byLesson
}
