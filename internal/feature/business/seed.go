package business

import "business-directory/internal/domain"

func row(name, email, phone, category, address, city, postcode, description, website, image string, rating float64, reviews int, verified bool) domain.BusinessInput {
	return domain.BusinessInput{
		Name:        Ptr(name),
		Email:       Ptr(email),
		Phone:       Ptr(phone),
		Category:    Ptr(category),
		Address:     Ptr(address),
		City:        Ptr(city),
		Postcode:    Ptr(postcode),
		Description: Ptr(description),
		Website:     Ptr(website),
		Rating:      Ptr(rating),
		Reviews:     Ptr(reviews),
		IsVerified:  Ptr(verified),
		Image:       Ptr(image),
	}
}

var seedRows = []domain.BusinessInput{
	row(
		"Tech Solutions Ltd",
		"info@techsolutions.com",
		"2071234567",
		"Technology",
		"123 Silicon Street",
		"London",
		"SW1A 1AA",
		"Leading technology solutions provider offering custom software development, cloud services, and IT consulting.",
		"https://techsolutions.com",
		"https://images.unsplash.com/photo-1552664730-d307ca884978?w=400&h=300&fit=crop",
		4.5,
		128,
		true,
	),
	row(
		"The Daily Brew Coffee Shop",
		"contact@dailybrew.co.uk",
		"2079876543",
		"Food & Beverage",
		"456 Oxford Street",
		"London",
		"W1D 1AN",
		"Premium coffee shop serving specialty espresso drinks, freshly baked pastries, and a cozy atmosphere for work or meetings.",
		"https://dailybrew.co.uk",
		"https://images.unsplash.com/photo-1495474472645-4d71bcdd2085?w=400&h=300&fit=crop",
		4.8,
		324,
		true,
	),
	row(
		"Wellness Medical Center",
		"appointments@wellnessmc.com",
		"2012345678",
		"Healthcare",
		"789 Health Avenue",
		"Manchester",
		"M1 1AA",
		"State-of-the-art medical facility providing comprehensive healthcare services including general practice, diagnostics, and specialist consultations.",
		"https://wellnessmc.com",
		"https://images.unsplash.com/photo-1576091160550-112173f7f869?w=400&h=300&fit=crop",
		4.6,
		256,
		true,
	),
	row(
		"Fashion Forward Boutique",
		"shop@fashionforward.co.uk",
		"1612345678",
		"Retail",
		"321 Style Lane",
		"Birmingham",
		"B1 1AA",
		"Trendy boutique featuring curated collections of high-end fashion, accessories, and seasonal collections from renowned designers.",
		"https://fashionforward.co.uk",
		"https://images.unsplash.com/photo-1558618666-fcd25c85cd64?w=400&h=300&fit=crop",
		4.4,
		189,
		true,
	),
	row(
		"Legal Experts Associates",
		"legal@legalexperts.co.uk",
		"2033456789",
		"Professional Services",
		"654 Law Street",
		"London",
		"EC1A 1BB",
		"Experienced law firm specializing in corporate law, litigation, intellectual property, and commercial contracts.",
		"https://legalexperts.co.uk",
		"https://images.unsplash.com/photo-1551288049-bebda4e38f71?w=400&h=300&fit=crop",
		4.7,
		95,
		true,
	),
	row(
		"Green Garden Landscaping",
		"inquiry@greengarden.com",
		"1215678901",
		"Professional Services",
		"987 Park Road",
		"Bristol",
		"BS1 1AA",
		"Professional landscaping and garden design services for residential and commercial properties with sustainable practices.",
		"https://greengarden.com",
		"https://images.unsplash.com/photo-1585320806297-9794b3e4eeae?w=400&h=300&fit=crop",
		4.3,
		67,
		false,
	),
	row(
		"Digital Marketing Pro",
		"hello@digitalmktpro.com",
		"2023456789",
		"Technology",
		"234 Digital Plaza",
		"London",
		"N1 1AA",
		"Full-service digital marketing agency specializing in SEO, PPC, social media marketing, and content strategy.",
		"https://digitalmktpro.com",
		"https://images.unsplash.com/photo-1460925895917-aaf4cab0c90f?w=400&h=300&fit=crop",
		4.5,
		142,
		true,
	),
	row(
		"Fresh Organic Market",
		"store@freshorganic.co.uk",
		"1913456789",
		"Retail",
		"567 Farmers Market",
		"Edinburgh",
		"EH1 1AA",
		"Specialty organic market offering locally sourced produce, natural products, and sustainable grocery options.",
		"https://freshorganic.co.uk",
		"https://images.unsplash.com/photo-1542838132-92c53300491e?w=400&h=300&fit=crop",
		4.6,
		198,
		true,
	),
	row(
		"Premium Fitness Studio",
		"membership@premiumfitness.com",
		"1212345678",
		"Other",
		"890 Gym Street",
		"Leeds",
		"LS1 1AA",
		"Modern fitness center with state-of-the-art equipment, personal training, group classes, and wellness programs.",
		"https://premiumfitness.com",
		"https://images.unsplash.com/photo-1534438327276-14e5300c3a48?w=400&h=300&fit=crop",
		4.4,
		213,
		true,
	),
	row(
		"Artisan Bakery & Cafe",
		"orders@artisanbakery.co.uk",
		"1613456789",
		"Food & Beverage",
		"111 Baker Lane",
		"Manchester",
		"M4 1AA",
		"Traditional artisan bakery producing fresh bread, pastries, and desserts daily with premium ingredients and time-honored techniques.",
		"https://artisanbakery.co.uk",
		"https://images.unsplash.com/photo-1555507036-ab1f4038808a?w=400&h=300&fit=crop",
		4.7,
		287,
		true,
	),
}

// SeedSet returns the reference listings loaded by the seed command.
func SeedSet() []domain.BusinessInput {
	out := make([]domain.BusinessInput, len(seedRows))
	copy(out, seedRows)
	return out
}
