package service

import "github.com/jimmeey/expiry-dashboard/internal/domain"

// SampleRecords returns the fixed demo dataset served when the member feed
// cannot be reached and nothing is cached yet. The records are documented
// stand-ins, not live data; responses carrying them are marked
// SourceSample so the UI can say so.
func SampleRecords() []domain.MemberRecord {
	return []domain.MemberRecord{
		{
			UniqueID:         "4406-Studio 4 Class Package-19981880-2022-02-27T18:30:00.000Z",
			MemberID:         "4406",
			FirstName:        "Shereena",
			LastName:         "Master",
			Email:            "shereena.master@gmail.com",
			MembershipName:   "Studio 4 Class Package",
			EndDate:          "2023-02-11T00:00:00Z",
			Location:         "Kwality House, Kemps Corner",
			SessionsLeft:     0,
			TotalSessions:    4,
			ItemID:           "19981880",
			OrderDate:        "2022-02-28T00:00:00Z",
			StartDate:        "2022-02-28T00:00:00Z",
			SoldBy:           "-",
			MembershipID:     "25768",
			Frozen:           "-",
			Paid:             "4779",
			Status:           domain.StatusExpired,
			Tags:             []string{},
			PersistenceKey:   "4406-studio 4 class package-19981880-2022-02-27t18:30:00.000z-4406-shereena.master@gmail.com",
			UniqueIdentifier: "4406-shereena.master@gmail.com-shereena-master",
		},
		{
			UniqueID:         "77316-Studio Annual Unlimited---2026-01-01T00:12:39.000Z",
			MemberID:         "77316",
			FirstName:        "Ayesha",
			LastName:         "Mansukhani",
			Email:            "ayesha.mansukhani@gmail.com",
			MembershipName:   "Studio Annual Unlimited",
			EndDate:          "2026-01-01T00:00:00Z",
			Location:         "Kwality House, Kemps Corner",
			SessionsLeft:     0,
			TotalSessions:    0,
			ItemID:           "-",
			OrderDate:        "2026-01-01T05:42:39Z",
			StartDate:        "2026-01-01T05:42:39Z",
			SoldBy:           "-",
			MembershipID:     "-",
			Frozen:           "FALSE",
			Paid:             "-",
			Status:           domain.StatusActive,
			Tags:             []string{},
			PersistenceKey:   "77316-studio annual unlimited---2026-01-01t00:12:39.000z-77316-ayesha.mansukhani@gmail.com",
			UniqueIdentifier: "77316-ayesha.mansukhani@gmail.com-ayesha-mansukhani",
		},
		{
			UniqueID:         "110567-Studio 4 Class Package-39727200-2025-04-12T13:27:43.839Z",
			MemberID:         "110567",
			FirstName:        "Swathi",
			LastName:         "Mohan",
			Email:            "swathimohan05@gmail.com",
			MembershipName:   "Studio 4 Class Package",
			EndDate:          "2025-04-25T00:00:00Z",
			Location:         "Supreme HQ, Bandra",
			SessionsLeft:     3,
			TotalSessions:    4,
			ItemID:           "39727200",
			OrderDate:        "2025-04-12T18:57:43Z",
			StartDate:        "2025-04-12T18:57:43Z",
			SoldBy:           "imran@physique57mumbai.com",
			MembershipID:     "25768",
			Frozen:           "-",
			Paid:             "6313",
			Status:           domain.StatusExpired,
			Tags:             []string{},
			PersistenceKey:   "110567-studio 4 class package-39727200-2025-04-12t13:27:43.839z-110567-swathimohan05@gmail.com",
			UniqueIdentifier: "110567-swathimohan05@gmail.com-swathi-mohan",
		},
	}
}
