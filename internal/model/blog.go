package model

import "time"

// Author is a blog post author shown alongside published articles.
//
// Fields:
//  ID     – primary key identifier.
//  Name   – display name.
//  Avatar – path to the avatar image.
//  Bio    – short biography line.
type Author struct {
	ID     string `json:"id"`     // authors.id
	Name   string `json:"name"`   // authors.name
	Avatar string `json:"avatar"` // authors.avatar
	Bio    string `json:"bio"`    // authors.bio
}

// Category groups blog posts by topic.  Categories are referenced by
// slug in list queries.
type Category struct {
	ID   string `json:"id"`   // categories.id
	Name string `json:"name"` // categories.name
	Slug string `json:"slug"` // categories.slug
}

// Post is a published blog article.  A post is considered published
// once its PublishedAt timestamp is in the past.
//
// Fields:
//  ID          – primary key identifier.
//  Title       – article title.
//  Slug        – URL slug, unique.
//  Excerpt     – short teaser shown on listing pages.
//  Content     – full article body (markdown).
//  CoverImage  – path to the cover image.
//  PublishedAt – publication timestamp; posts with a future value are hidden.
//  Author      – embedded author details.
//  Category    – embedded category details.
type Post struct {
	ID          string    `json:"id"`          // posts.id
	Title       string    `json:"title"`       // posts.title
	Slug        string    `json:"slug"`        // posts.slug
	Excerpt     string    `json:"excerpt"`     // posts.excerpt
	Content     string    `json:"content"`     // posts.content
	CoverImage  string    `json:"coverImage"`  // posts.cover_image
	PublishedAt time.Time `json:"publishedAt"` // posts.published_at
	Author      Author    `json:"author"`      // joined from authors
	Category    Category  `json:"category"`    // joined from categories
}
