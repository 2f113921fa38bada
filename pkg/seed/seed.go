package seed

import (
	"context"
	"log"

	"tripnest_backend/internal/model"
	"tripnest_backend/internal/repository"
	"tripnest_backend/pkg/apperror"
)

// Catalog fills an empty catalog with a small demo set. It does nothing when any
// destination already exists.
func Catalog(ctx context.Context, repos repository.Repositories) error {
	count, err := repos.Destinations.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		log.Println("Catalog already seeded, skipping")
		return nil
	}

	bali := &model.Destination{
		Name:        "Bali Paradise",
		Location:    "Bali, Indonesia",
		Description: "Experience the magic of Bali with pristine beaches and cultural wonders",
		Price:       1299,
		Category:    model.CategoryBeach,
		ImageURL:    "https://images.unsplash.com/photo-1537953773345-d172ccf13cf1",
		Rating:      4.8,
		Featured:    true,
	}
	alps := &model.Destination{
		Name:        "Swiss Alps Adventure",
		Location:    "Switzerland",
		Description: "Breathtaking mountain views and alpine adventures",
		Price:       2199,
		Category:    model.CategoryMountain,
		ImageURL:    "https://images.unsplash.com/photo-1506905925346-21bda4d32df4",
		Rating:      4.9,
		Featured:    true,
	}
	for _, d := range []*model.Destination{bali, alps} {
		if err := repos.Destinations.Create(ctx, d); err != nil {
			return err
		}
	}

	resort := &model.Hotel{
		Name:          "Ocean View Resort",
		DestinationID: bali.ID,
		Description:   "Luxury beachfront resort with stunning ocean views",
		Price:         299,
		ImageURL:      "https://images.unsplash.com/photo-1566073771259-6a8506099945",
		Rating:        4.7,
		Featured:      true,
	}
	resort.SetAmenities([]string{"Pool", "Spa", "Beach access"})
	if err := repos.Hotels.Create(ctx, resort); err != nil {
		return err
	}

	snorkel := &model.Activity{
		Name:          "Snorkeling Adventure",
		DestinationID: bali.ID,
		Category:      "Water Sports",
		Description:   "Explore vibrant coral reefs and marine life",
		Price:         89,
		Duration:      "3 hours",
	}
	if err := repos.Activities.Create(ctx, snorkel); err != nil {
		return err
	}

	theme := &model.TravelTheme{
		Name:        "Island Escapes",
		Description: "Sun, reefs and slow mornings",
		Featured:    true,
	}
	if err := repos.Themes.Create(ctx, theme); err != nil {
		return err
	}
	if err := repos.Themes.SetDestinations(ctx, theme.ID, []string{bali.ID}); err != nil {
		return err
	}
	if err := repos.Themes.SetActivities(ctx, theme.ID, []string{snorkel.ID}); err != nil {
		return err
	}

	log.Println("Catalog seeded successfully!")
	return nil
}

// Admin creates an admin profile, or promotes the existing profile with that email.
func Admin(ctx context.Context, profiles *repository.ProfileRepository, email, password, fullName string) (*model.Profile, error) {
	existing, err := profiles.GetByEmail(ctx, email)
	if err == nil {
		if existing.IsAdmin() {
			return existing, nil
		}
		log.Printf("Promoting %s to admin", existing.Email)
		return profiles.SetRole(ctx, existing.ID, model.RoleAdmin)
	}
	if apperror.CodeOf(err) != apperror.CodeNotFound {
		return nil, err
	}

	if len(password) < 8 {
		return nil, apperror.Validation("password must be at least 8 characters")
	}
	profile := &model.Profile{Email: email, FullName: fullName, Role: model.RoleAdmin}
	if err := profile.SetPassword(password); err != nil {
		return nil, err
	}
	if err := profiles.Create(ctx, profile); err != nil {
		return nil, err
	}
	log.Printf("Admin %s created", profile.Email)
	return profile, nil
}
